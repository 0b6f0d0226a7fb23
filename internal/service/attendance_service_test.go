package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northside-portal/portal-api/internal/models"
)

type mockAttendanceRepo struct {
	summary models.AttendanceSummary
	tardies []models.Attendance
}

func (m *mockAttendanceRepo) Summarize(ctx context.Context, studentID string) (models.AttendanceSummary, error) {
	return m.summary, nil
}

func (m *mockAttendanceRepo) ListTardies(ctx context.Context, studentID string) ([]models.Attendance, error) {
	return m.tardies, nil
}

func (m *mockAttendanceRepo) FindTardy(ctx context.Context, id, studentID string) (*models.Attendance, error) {
	for _, t := range m.tardies {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestAttendanceServiceOverview(t *testing.T) {
	repo := &mockAttendanceRepo{
		summary: models.AttendanceSummary{Present: 30, Tardy: 2, Absent: 2},
		tardies: []models.Attendance{
			{
				ID:      "tardy-1",
				Date:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
				Status:  models.AttendanceTardy,
				Course:  "HS1 Algebra",
				Teacher: "Dr. George",
			},
		},
	}
	svc := NewAttendanceService(repo, nil)

	overview, err := svc.Overview(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 30, overview.Summary.Present)
	require.Len(t, overview.Tardies, 1)
	assert.Equal(t, "March 15", overview.Tardies[0].Date)
	assert.Equal(t, "HS1 Algebra", overview.Tardies[0].Course)
}

func TestAttendanceServiceOverviewNoTardies(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil)

	overview, err := svc.Overview(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.NotNil(t, overview.Tardies)
	assert.Empty(t, overview.Tardies)
}

func TestAttendanceServiceTardyDetail(t *testing.T) {
	repo := &mockAttendanceRepo{tardies: []models.Attendance{{
		ID:      "tardy-1",
		Status:  models.AttendanceTardy,
		Course:  "HS1 Physics",
		Details: "Arrived 10 minutes late, missed quiz instructions.",
	}}}
	svc := NewAttendanceService(repo, nil)

	record, err := svc.TardyDetail(context.Background(), "stu-1", "tardy-1")
	require.NoError(t, err)
	assert.Equal(t, "HS1 Physics", record.Course)
}

func TestAttendanceServiceTardyDetailNotFound(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil)

	_, err := svc.TardyDetail(context.Background(), "stu-1", "missing")
	requireAppError(t, err, "NOT_FOUND", http.StatusNotFound)
}
