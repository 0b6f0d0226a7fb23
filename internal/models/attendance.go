package models

import "time"

// AttendanceStatus is the recorded state for one attendance entry.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceTardy   AttendanceStatus = "tardy"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance is one recorded attendance entry for a student.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"-"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Course    string           `db:"course" json:"course"`
	Teacher   string           `db:"teacher" json:"teacher"`
	Time      string           `db:"time" json:"time,omitempty"`
	Details   string           `db:"details" json:"details,omitempty"`
	Excused   bool             `db:"excused" json:"excused"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceSummary carries the present/tardy/absent counts.
type AttendanceSummary struct {
	Present int `json:"present"`
	Tardy   int `json:"tardy"`
	Absent  int `json:"absent"`
}

// TardyItem is the list row for the attendance screen.
type TardyItem struct {
	ID      string `json:"id"`
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
	Date    string `json:"date"`
}

// AttendanceOverview is the attendance screen payload.
type AttendanceOverview struct {
	Summary AttendanceSummary `json:"summary"`
	Tardies []TardyItem       `json:"tardies"`
}
