package models

import "time"

// Grade holds a student's standing in one course, with the category and
// assignment breakdown the detail screen renders.
type Grade struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"-"`
	Course      string    `db:"course" json:"course"`
	Teacher     string    `db:"teacher" json:"teacher"`
	Grade       string    `db:"grade" json:"grade"`
	LetterGrade string    `db:"letter_grade" json:"letterGrade"`
	IsFailing   bool      `db:"is_failing" json:"isFailing"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Categories  []GradeCategory   `json:"categories"`
	Assignments []GradeAssignment `json:"assignments"`
}

// GradeCategory is a weighted grading bucket within a course.
type GradeCategory struct {
	ID         string  `db:"id" json:"-"`
	GradeID    string  `db:"grade_id" json:"-"`
	Name       string  `db:"name" json:"name"`
	Percentage float64 `db:"percentage" json:"percentage"`
	Score      string  `db:"score" json:"score"`
}

// GradeAssignment is one scored assignment within a course.
type GradeAssignment struct {
	ID       string     `db:"id" json:"-"`
	GradeID  string     `db:"grade_id" json:"-"`
	Name     string     `db:"name" json:"name"`
	Category string     `db:"category" json:"category"`
	DueDate  *time.Time `db:"due_date" json:"dueDate,omitempty"`
	Score    string     `db:"score" json:"score"`
}
