package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

type attendanceRepository interface {
	Summarize(ctx context.Context, studentID string) (models.AttendanceSummary, error)
	ListTardies(ctx context.Context, studentID string) ([]models.Attendance, error)
	FindTardy(ctx context.Context, id, studentID string) (*models.Attendance, error)
}

// AttendanceService serves the attendance screens.
type AttendanceService struct {
	repo   attendanceRepository
	logger *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(repo attendanceRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, logger: logger}
}

// Overview returns the summary counts plus the tardy list.
func (s *AttendanceService) Overview(ctx context.Context, studentID string) (*models.AttendanceOverview, error) {
	summary, err := s.repo.Summarize(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarize attendance")
	}

	tardies, err := s.repo.ListTardies(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tardies")
	}

	overview := &models.AttendanceOverview{Summary: summary, Tardies: make([]models.TardyItem, 0, len(tardies))}
	for _, tardy := range tardies {
		overview.Tardies = append(overview.Tardies, models.TardyItem{
			ID:      tardy.ID,
			Course:  tardy.Course,
			Teacher: tardy.Teacher,
			Date:    tardy.Date.Format("January 2"),
		})
	}
	return overview, nil
}

// TardyDetail returns one tardy record scoped to the owning student.
func (s *AttendanceService) TardyDetail(ctx context.Context, studentID, tardyID string) (*models.Attendance, error) {
	record, err := s.repo.FindTardy(ctx, tardyID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Tardy record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tardy record")
	}
	return record, nil
}
