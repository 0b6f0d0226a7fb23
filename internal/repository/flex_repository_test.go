package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/northside-portal/portal-api/internal/models"
)

func newFlexRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func periodRow(status models.FlexStatus, version int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "status", "version", "created_at", "updated_at"}).
		AddRow("period-1", "Flex 2", status, version, now, now)
}

type optionFixture struct {
	id       string
	title    string
	capacity int
}

func optionRows(options ...optionFixture) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "period_id", "title", "room", "teacher", "capacity", "position"})
	for i, o := range options {
		rows.AddRow(o.id, "period-1", o.title, "Room 100", "Ms. Johnson", o.capacity, i)
	}
	return rows
}

func enrollmentRows(pairs ...[2]string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"option_id", "student_id"})
	for _, p := range pairs {
		rows.AddRow(p[0], p[1])
	}
	return rows
}

func expectAggregateLoad(mock sqlmock.Sqlmock, period, options, enrollments *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, status, version, created_at, updated_at FROM flex_periods WHERE id = $1")).
		WithArgs("period-1").
		WillReturnRows(period)
	mock.ExpectQuery(`SELECT id, period_id, title, room, teacher, capacity, position\s+FROM flex_options WHERE period_id = \$1 ORDER BY position, id`).
		WithArgs("period-1").
		WillReturnRows(options)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT option_id, student_id FROM flex_enrollments WHERE period_id = $1")).
		WithArgs("period-1").
		WillReturnRows(enrollments)
}

func TestFlexRepositoryListPeriods(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	rows := sqlmock.NewRows([]string{"id", "name", "status"}).
		AddRow("period-1", "Flex 2", models.FlexStatusAvailable).
		AddRow("period-2", "Flex 4", models.FlexStatusUpcoming)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, status FROM flex_periods ORDER BY created_at")).
		WillReturnRows(rows)

	periods, err := repo.ListPeriods(context.Background())
	require.NoError(t, err)
	require.Len(t, periods, 2)
	require.Equal(t, "Flex 2", periods[0].Name)
	require.Equal(t, models.FlexStatusUpcoming, periods[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryFindPeriodByID(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 3),
		optionRows(
			optionFixture{id: "option-1", title: "Study Hall", capacity: 30},
			optionFixture{id: "option-2", title: "Math Help", capacity: 20},
		),
		enrollmentRows([2]string{"option-1", "stu-1"}, [2]string{"option-1", "stu-2"}, [2]string{"option-2", "stu-3"}),
	)

	period, err := repo.FindPeriodByID(context.Background(), "period-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), period.Version)
	require.Len(t, period.Options, 2)
	require.ElementsMatch(t, []string{"stu-1", "stu-2"}, period.Options[0].Enrolled)
	require.Equal(t, []string{"stu-3"}, period.Options[1].Enrolled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollment(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 7),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 2}),
		enrollmentRows([2]string{"option-1", "stu-other"}),
	)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
		WithArgs("period-1", "option-1", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2")).
		WithArgs("period-1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitCommitted, result.Outcome)
	require.False(t, result.Transferred)
	require.False(t, result.NoChange)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentTransfer(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 1),
		optionRows(
			optionFixture{id: "option-1", title: "Study Hall", capacity: 30},
			optionFixture{id: "option-2", title: "Math Help", capacity: 20},
		),
		enrollmentRows([2]string{"option-1", "stu-1"}),
	)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM flex_enrollments WHERE period_id = $1 AND student_id = $2")).
		WithArgs("period-1", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
		WithArgs("period-1", "option-2", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2")).
		WithArgs("period-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-2", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitCommitted, result.Outcome)
	require.True(t, result.Transferred)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentNoChange(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 4),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows([2]string{"option-1", "stu-1"}),
	)
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitCommitted, result.Outcome)
	require.True(t, result.NoChange)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentOptionFull(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 2),
		optionRows(optionFixture{id: "option-1", title: "Chess Club", capacity: 2}),
		enrollmentRows([2]string{"option-1", "stu-a"}, [2]string{"option-1", "stu-b"}),
	)
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitOptionFull, result.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentPeriodNotFound(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, status, version, created_at, updated_at FROM flex_periods WHERE id = $1")).
		WithArgs("period-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "version", "created_at", "updated_at"}))
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitPeriodNotFound, result.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentPeriodNotAvailable(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusClosed, 0),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows(),
	)
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitPeriodNotAvailable, result.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentOptionNotFound(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)

	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 0),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows(),
	)
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-missing", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitOptionNotFound, result.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentRetriesAfterVersionConflict(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)
	var retries int
	repo.Instrument(func() { retries++ }, nil)

	// First attempt loses the version race and rolls back.
	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 10),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows(),
	)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
		WithArgs("period-1", "option-1", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2")).
		WithArgs("period-1", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Second attempt sees the new version and wins.
	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 11),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows(),
	)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
		WithArgs("period-1", "option-1", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2")).
		WithArgs("period-1", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitCommitted, result.Outcome)
	require.Equal(t, 1, retries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentRetriesAfterDuplicateSeat(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 5, time.Millisecond)
	var retries int
	repo.Instrument(func() { retries++ }, nil)

	// First attempt races a concurrent commit for the same student: the
	// snapshot shows no seat, but the insert hits the enrollment key.
	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 5),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows(),
	)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
		WithArgs("period-1", "option-1", "stu-1").
		WillReturnError(&pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "flex_enrollments_pkey"`})
	mock.ExpectRollback()

	// The replayed cycle sees the committed seat and resolves to a no-op.
	mock.ExpectBegin()
	expectAggregateLoad(mock,
		periodRow(models.FlexStatusAvailable, 6),
		optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
		enrollmentRows([2]string{"option-1", "stu-1"}),
	)
	mock.ExpectRollback()

	result, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.NoError(t, err)
	require.Equal(t, models.CommitCommitted, result.Outcome)
	require.True(t, result.NoChange)
	require.Equal(t, 1, retries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlexRepositoryCommitEnrollmentContentionExhausted(t *testing.T) {
	db, mock, cleanup := newFlexRepoMock(t)
	defer cleanup()
	repo := NewFlexRepository(db, 2, time.Millisecond)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		expectAggregateLoad(mock,
			periodRow(models.FlexStatusAvailable, int64(i)),
			optionRows(optionFixture{id: "option-1", title: "Study Hall", capacity: 30}),
			enrollmentRows(),
		)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO flex_enrollments (period_id, option_id, student_id) VALUES ($1, $2, $3)")).
			WithArgs("period-1", "option-1", "stu-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE flex_periods SET version = version + 1, updated_at = NOW() WHERE id = $1 AND version = $2")).
			WithArgs("period-1", int64(i)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()
	}

	_, err := repo.CommitEnrollment(context.Background(), "period-1", "option-1", "stu-1")
	require.ErrorIs(t, err, ErrCommitContention)
	require.NoError(t, mock.ExpectationsWereMet())
}
