package models

import "time"

// UserRole represents the portal roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// User represents a portal account stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`

	StudentInfo *StudentInfo `json:"student_info,omitempty"`
}

// StudentInfo holds the student record attached to a student account.
type StudentInfo struct {
	UserID        string     `db:"user_id" json:"-"`
	FirstName     string     `db:"first_name" json:"first_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	MiddleInitial string     `db:"middle_initial" json:"middle_initial"`
	StudentNumber string     `db:"student_number" json:"student_id"`
	GradeLevel    string     `db:"grade_level" json:"grade"`
	DOB           *time.Time `db:"dob" json:"dob,omitempty"`
	School        string     `db:"school" json:"school"`
	ProfilePicURL *string    `db:"profile_pic_url" json:"profile_pic_url,omitempty"`
}

// ProfileCard is the compact shape for the profile screen header.
type ProfileCard struct {
	Name          string  `json:"name"`
	GradeLevel    string  `json:"gradeLevel"`
	School        string  `json:"school"`
	ProfilePicURL *string `json:"profilePicUrl"`
}

// ScheduleEntry is one row of a student's daily schedule.
type ScheduleEntry struct {
	ID        string `db:"id" json:"id"`
	StudentID string `db:"student_id" json:"-"`
	Course    string `db:"course" json:"course"`
	Teacher   string `db:"teacher" json:"teacher"`
	Room      string `db:"room" json:"room"`
	StartTime string `db:"start_time" json:"start"`
	EndTime   string `db:"end_time" json:"end"`
	Position  int    `db:"position" json:"-"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
