package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

type profileUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListSchedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error)
}

// ProfileService serves the profile screens.
type ProfileService struct {
	repo   profileUserRepository
	logger *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(repo profileUserRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, logger: logger}
}

// Card returns the profile screen header payload.
func (s *ProfileService) Card(ctx context.Context, userID string) (*models.ProfileCard, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	card := &models.ProfileCard{Name: user.Name}
	if user.StudentInfo != nil {
		card.GradeLevel = user.StudentInfo.GradeLevel
		card.School = user.StudentInfo.School
		card.ProfilePicURL = user.StudentInfo.ProfilePicURL
	}
	return card, nil
}

// Info returns the detailed student record.
func (s *ProfileService) Info(ctx context.Context, userID string) (*models.StudentInfo, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.StudentInfo == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student record not found")
	}
	return user.StudentInfo, nil
}

// Schedule returns the student's daily schedule.
func (s *ProfileService) Schedule(ctx context.Context, userID string) ([]models.ScheduleEntry, error) {
	entries, err := s.repo.ListSchedule(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return entries, nil
}

func (s *ProfileService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}
