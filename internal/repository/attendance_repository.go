package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northside-portal/portal-api/internal/models"
)

// AttendanceRepository handles persistence of attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Summarize returns the student's present/tardy/absent counts.
func (r *AttendanceRepository) Summarize(ctx context.Context, studentID string) (models.AttendanceSummary, error) {
	const query = `SELECT
        COUNT(*) FILTER (WHERE status = 'present') AS present,
        COUNT(*) FILTER (WHERE status = 'tardy') AS tardy,
        COUNT(*) FILTER (WHERE status = 'absent') AS absent
        FROM attendance WHERE student_id = $1`
	var row struct {
		Present int `db:"present"`
		Tardy   int `db:"tardy"`
		Absent  int `db:"absent"`
	}
	if err := r.db.GetContext(ctx, &row, query, studentID); err != nil {
		return models.AttendanceSummary{}, fmt.Errorf("summarize attendance: %w", err)
	}
	return models.AttendanceSummary{Present: row.Present, Tardy: row.Tardy, Absent: row.Absent}, nil
}

// ListTardies returns the student's tardy records, newest first.
func (r *AttendanceRepository) ListTardies(ctx context.Context, studentID string) ([]models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, course, teacher, time, details, excused, created_at
        FROM attendance WHERE student_id = $1 AND status = 'tardy' ORDER BY date DESC`
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list tardies: %w", err)
	}
	return records, nil
}

// FindTardy returns one tardy record scoped to the owning student.
func (r *AttendanceRepository) FindTardy(ctx context.Context, id, studentID string) (*models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, course, teacher, time, details, excused, created_at
        FROM attendance WHERE id = $1 AND student_id = $2 AND status = 'tardy'`
	var record models.Attendance
	if err := r.db.GetContext(ctx, &record, query, id, studentID); err != nil {
		return nil, err
	}
	return &record, nil
}
