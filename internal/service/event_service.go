package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

type eventRepository interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
}

// EventService serves the calendar screens.
type EventService struct {
	repo   eventRepository
	logger *zap.Logger
}

// NewEventService constructs EventService.
func NewEventService(repo eventRepository, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, logger: logger}
}

// ListMonth returns the events of one calendar month. With month or year
// unset it returns every event, matching the legacy behavior.
func (s *EventService) ListMonth(ctx context.Context, month, year int) ([]models.Event, error) {
	var events []models.Event
	var err error
	if month >= 1 && month <= 12 && year > 0 {
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		events, err = s.repo.ListBetween(ctx, from, from.AddDate(0, 1, 0))
	} else {
		events, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// ListDay returns the events of a single date given as YYYY-MM-DD.
func (s *EventService) ListDay(ctx context.Context, date string) ([]models.Event, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted YYYY-MM-DD")
	}
	events, err := s.repo.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}
