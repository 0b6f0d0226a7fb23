package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/northside-portal/portal-api/internal/models"
)

// ErrCommitContention is returned when a registration commit keeps losing
// the version race against concurrent writers after all retries.
var ErrCommitContention = errors.New("flex aggregate contention")

// FlexRepository is the enrollment store. It owns the FlexPeriod aggregate
// and commits registrations as a single read-validate-mutate-persist cycle
// per transaction. Writers serialise on the flex_periods.version column:
// the final version bump is guarded by the version read at the start of the
// cycle, and a guard miss restarts the whole cycle.
type FlexRepository struct {
	db      *sqlx.DB
	retries int
	backoff time.Duration
	onRetry func()
	observe func(query string, d time.Duration)
}

// NewFlexRepository constructs the repository. retries bounds the internal
// commit loop; backoff is the base delay between attempts.
func NewFlexRepository(db *sqlx.DB, retries int, backoff time.Duration) *FlexRepository {
	if retries <= 0 {
		retries = 5
	}
	if backoff <= 0 {
		backoff = 25 * time.Millisecond
	}
	return &FlexRepository{db: db, retries: retries, backoff: backoff}
}

// Instrument registers optional metric callbacks: onRetry fires for every
// replayed commit, observe receives commit cycle timings.
func (r *FlexRepository) Instrument(onRetry func(), observe func(query string, d time.Duration)) {
	r.onRetry = onRetry
	r.observe = observe
}

// ListPeriods returns id/name/status for every flex period.
func (r *FlexRepository) ListPeriods(ctx context.Context) ([]models.FlexPeriodSummary, error) {
	const query = `SELECT id, name, status FROM flex_periods ORDER BY created_at`
	var periods []models.FlexPeriodSummary
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, fmt.Errorf("list flex periods: %w", err)
	}
	return periods, nil
}

// FindPeriodByID loads the full aggregate: the period row, its options in
// display order and each option's enrolled student set. Returns
// sql.ErrNoRows when the period does not exist.
func (r *FlexRepository) FindPeriodByID(ctx context.Context, periodID string) (*models.FlexPeriod, error) {
	return loadPeriod(ctx, r.db, periodID)
}

type queryer interface {
	sqlx.QueryerContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func loadPeriod(ctx context.Context, q queryer, periodID string) (*models.FlexPeriod, error) {
	const periodQuery = `SELECT id, name, status, version, created_at, updated_at FROM flex_periods WHERE id = $1`
	var period models.FlexPeriod
	if err := q.GetContext(ctx, &period, periodQuery, periodID); err != nil {
		return nil, err
	}

	const optionsQuery = `SELECT id, period_id, title, room, teacher, capacity, position
        FROM flex_options WHERE period_id = $1 ORDER BY position, id`
	if err := q.SelectContext(ctx, &period.Options, optionsQuery, periodID); err != nil {
		return nil, fmt.Errorf("load flex options: %w", err)
	}

	const enrolledQuery = `SELECT option_id, student_id FROM flex_enrollments WHERE period_id = $1`
	var rows []struct {
		OptionID  string `db:"option_id"`
		StudentID string `db:"student_id"`
	}
	if err := q.SelectContext(ctx, &rows, enrolledQuery, periodID); err != nil {
		return nil, fmt.Errorf("load flex enrollments: %w", err)
	}
	byOption := make(map[string][]string, len(period.Options))
	for _, row := range rows {
		byOption[row.OptionID] = append(byOption[row.OptionID], row.StudentID)
	}
	for i := range period.Options {
		period.Options[i].Enrolled = byOption[period.Options[i].ID]
	}

	return &period, nil
}

// CommitEnrollment atomically registers the student in the target option.
// Business rejections come back as CommitResult outcomes; the error return
// is reserved for storage failures and contention exhaustion
// (ErrCommitContention). On any outcome other than Committed the aggregate
// is untouched.
func (r *FlexRepository) CommitEnrollment(ctx context.Context, periodID, optionID, studentID string) (models.CommitResult, error) {
	for attempt := 0; attempt < r.retries; attempt++ {
		started := time.Now()
		result, conflicted, err := r.tryCommit(ctx, periodID, optionID, studentID)
		if r.observe != nil {
			r.observe("flex_commit_enrollment", time.Since(started))
		}
		if err != nil {
			return models.CommitResult{}, err
		}
		if !conflicted {
			return result, nil
		}
		if r.onRetry != nil {
			r.onRetry()
		}

		// Version guard missed: another writer committed first. Back off
		// briefly and replay the cycle against the new state.
		delay := r.backoff * time.Duration(attempt+1)
		select {
		case <-ctx.Done():
			return models.CommitResult{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	return models.CommitResult{}, fmt.Errorf("commit enrollment for period %s: %w", periodID, ErrCommitContention)
}

func (r *FlexRepository) tryCommit(ctx context.Context, periodID, optionID, studentID string) (models.CommitResult, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.CommitResult{}, false, fmt.Errorf("begin commit enrollment: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	period, err := loadPeriod(ctx, tx, periodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CommitResult{Outcome: models.CommitPeriodNotFound}, false, nil
		}
		return models.CommitResult{}, false, fmt.Errorf("load flex period: %w", err)
	}

	if period.Status != models.FlexStatusAvailable {
		return models.CommitResult{Outcome: models.CommitPeriodNotAvailable}, false, nil
	}

	option := period.Option(optionID)
	if option == nil {
		return models.CommitResult{Outcome: models.CommitOptionNotFound}, false, nil
	}

	// Re-registering the held seat is a no-op, not an error.
	if option.HasStudent(studentID) {
		return models.CommitResult{Outcome: models.CommitCommitted, NoChange: true}, false, nil
	}

	// A registration transfers rather than stacks: free the student's seat
	// in any other option of this period before the capacity check, so a
	// transfer out of a full option is not double counted.
	prior := period.EnrolledOption(studentID)
	if prior != nil {
		const freeSeat = `DELETE FROM flex_enrollments WHERE period_id = $1 AND student_id = $2`
		if _, err := tx.ExecContext(ctx, freeSeat, periodID, studentID); err != nil {
			return models.CommitResult{}, false, fmt.Errorf("release prior enrollment: %w", err)
		}
	}

	if len(option.Enrolled) >= option.Capacity {
		return models.CommitResult{Outcome: models.CommitOptionFull}, false, nil
	}

	const takeSeat = `INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, takeSeat, periodID, optionID, studentID); err != nil {
		// A duplicate key here means the same student committed concurrently
		// between our snapshot and this insert. Replay the cycle: the re-read
		// aggregate resolves it to a no-op or a transfer.
		if isUniqueViolation(err) {
			return models.CommitResult{}, true, nil
		}
		return models.CommitResult{}, false, fmt.Errorf("insert enrollment: %w", err)
	}

	const bumpVersion = `UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2`
	res, err := tx.ExecContext(ctx, bumpVersion, periodID, period.Version)
	if err != nil {
		return models.CommitResult{}, false, fmt.Errorf("bump aggregate version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.CommitResult{}, false, fmt.Errorf("check aggregate version: %w", err)
	}
	if affected == 0 {
		return models.CommitResult{}, true, nil
	}

	if err := tx.Commit(); err != nil {
		return models.CommitResult{}, false, fmt.Errorf("commit enrollment: %w", err)
	}
	return models.CommitResult{Outcome: models.CommitCommitted, Transferred: prior != nil}, false, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
