package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

type mockEventRepo struct {
	events   []models.Event
	lastFrom time.Time
	lastTo   time.Time
	listAll  bool
}

func (m *mockEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	m.lastFrom, m.lastTo = from, to
	var out []models.Event
	for _, e := range m.events {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepo) ListAll(ctx context.Context) ([]models.Event, error) {
	m.listAll = true
	return m.events, nil
}

func TestEventServiceListMonth(t *testing.T) {
	repo := &mockEventRepo{events: []models.Event{
		{ID: "evt-1", Title: "Science Fair", Date: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "evt-2", Title: "Chess Club Meeting", Date: time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewEventService(repo, nil)

	events, err := svc.ListMonth(context.Background(), 6, 2024)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Science Fair", events[0].Title)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), repo.lastTo)
}

func TestEventServiceListMonthWithoutFilter(t *testing.T) {
	repo := &mockEventRepo{events: []models.Event{{ID: "evt-1", Title: "Science Fair"}}}
	svc := NewEventService(repo, nil)

	events, err := svc.ListMonth(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.True(t, repo.listAll)
}

func TestEventServiceListDay(t *testing.T) {
	repo := &mockEventRepo{events: []models.Event{
		{ID: "evt-1", Title: "School Play Rehearsal", Date: time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)},
	}}
	svc := NewEventService(repo, nil)

	events, err := svc.ListDay(context.Background(), "2024-06-10")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), repo.lastTo)
}

func TestEventServiceListDayBadDate(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil)

	_, err := svc.ListDay(context.Background(), "June 10")
	requireAppError(t, err, appErrors.ErrValidation.Code, http.StatusBadRequest)
}

func TestEventServiceListDayEmpty(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil)

	events, err := svc.ListDay(context.Background(), "2024-06-10")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
