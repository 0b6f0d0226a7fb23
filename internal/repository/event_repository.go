package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northside-portal/portal-api/internal/models"
)

// EventRepository handles persistence of calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListBetween returns events with a date inside [from, to), date ascending.
func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	const query = `SELECT id, title, date, time, location, description, created_at, updated_at
        FROM events WHERE date >= $1 AND date < $2 ORDER BY date`
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListAll returns every event, date ascending.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	const query = `SELECT id, title, date, time, location, description, created_at, updated_at
        FROM events ORDER BY date`
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
