package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	"github.com/northside-portal/portal-api/internal/repository"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

const (
	flexPeriodsCacheKey    = "flex:periods"
	flexPeriodCachePrefix  = "flex:period:"
	flexPeriodCachePattern = "flex:period:*"
)

type flexStore interface {
	ListPeriods(ctx context.Context) ([]models.FlexPeriodSummary, error)
	FindPeriodByID(ctx context.Context, periodID string) (*models.FlexPeriod, error)
	CommitEnrollment(ctx context.Context, periodID, optionID, studentID string) (models.CommitResult, error)
}

// FlexService exposes the flex screens' read paths and the registration
// transaction. The student identity is always an explicit argument; the
// service never reaches into transport state for it.
type FlexService struct {
	store    flexStore
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewFlexService constructs FlexService.
func NewFlexService(store flexStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *FlexService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlexService{store: store, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListPeriods returns every flex period as a listing row.
func (s *FlexService) ListPeriods(ctx context.Context) ([]models.FlexPeriodSummary, error) {
	var cached []models.FlexPeriodSummary
	if hit, _ := s.cache.Get(ctx, flexPeriodsCacheKey, &cached); hit {
		return cached, nil
	}

	periods, err := s.store.ListPeriods(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list flex periods")
	}
	if periods == nil {
		periods = []models.FlexPeriodSummary{}
	}

	_ = s.cache.Set(ctx, flexPeriodsCacheKey, periods, s.cacheTTL)
	return periods, nil
}

// GetPeriod returns the pick-flex view for one period.
func (s *FlexService) GetPeriod(ctx context.Context, periodID string) (*models.FlexPeriodView, error) {
	if err := validateIdentifier(periodID); err != nil {
		return nil, err
	}

	cacheKey := flexPeriodCachePrefix + periodID
	var cached models.FlexPeriodView
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	period, err := s.store.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPeriodNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flex period")
	}

	view := &models.FlexPeriodView{
		Name:    period.Name,
		Status:  period.Status,
		Options: make([]models.FlexOptionView, 0, len(period.Options)),
	}
	for _, option := range period.Options {
		view.Options = append(view.Options, models.FlexOptionView{
			ID:            option.ID,
			Title:         option.Title,
			Room:          option.Room,
			Teacher:       option.Teacher,
			Capacity:      option.Capacity,
			EnrolledCount: len(option.Enrolled),
		})
	}

	_ = s.cache.Set(ctx, cacheKey, view, s.cacheTTL)
	return view, nil
}

// Register enrolls the student in the target option. The commit is atomic
// against the period aggregate: a prior seat in another option of the same
// period is released as part of the same transaction, re-registering the
// held seat is a no-op success, and a full option rejects without touching
// state.
func (s *FlexService) Register(ctx context.Context, studentID, periodID, optionID string) (*models.RegistrationResult, error) {
	if err := validateIdentifier(studentID); err != nil {
		return nil, err
	}
	if err := validateIdentifier(periodID); err != nil {
		return nil, err
	}
	if err := validateIdentifier(optionID); err != nil {
		return nil, err
	}

	result, err := s.store.CommitEnrollment(ctx, periodID, optionID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommitContention) {
			s.logger.Warn("flex commit contention exhausted",
				zap.String("period_id", periodID),
				zap.String("option_id", optionID))
			return nil, appErrors.Wrap(err, appErrors.ErrTransientContention.Code, appErrors.ErrTransientContention.Status, appErrors.ErrTransientContention.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit registration")
	}

	switch result.Outcome {
	case models.CommitCommitted:
	case models.CommitPeriodNotFound:
		return nil, appErrors.Clone(appErrors.ErrPeriodNotFound, "")
	case models.CommitPeriodNotAvailable:
		return nil, appErrors.Clone(appErrors.ErrPeriodNotAvailable, "")
	case models.CommitOptionNotFound:
		return nil, appErrors.Clone(appErrors.ErrOptionNotFound, "")
	case models.CommitOptionFull:
		return nil, appErrors.Clone(appErrors.ErrOptionFull, "")
	default:
		return nil, appErrors.Wrap(fmt.Errorf("unexpected commit outcome %q", result.Outcome), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit registration")
	}

	if !result.NoChange {
		_ = s.cache.Invalidate(ctx, flexPeriodCachePrefix+periodID)
	}

	s.logger.Info("flex registration committed",
		zap.String("student_id", studentID),
		zap.String("period_id", periodID),
		zap.String("option_id", optionID),
		zap.Bool("transferred", result.Transferred),
		zap.Bool("noop", result.NoChange))

	return &models.RegistrationResult{Success: true, Message: "Successfully registered."}, nil
}

func validateIdentifier(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidIdentifier.Code, appErrors.ErrInvalidIdentifier.Status, appErrors.ErrInvalidIdentifier.Message)
	}
	return nil
}
