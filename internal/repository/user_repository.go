package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/northside-portal/portal-api/internal/models"
)

// UserRepository handles persistence of portal accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the account with the given username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, name, role, last_login, created_at, updated_at
        FROM users WHERE username = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the account with the given id, including the student
// record when one exists.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, name, role, last_login, created_at, updated_at
        FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}

	const infoQuery = `SELECT user_id, first_name, last_name, middle_initial, student_number,
        grade_level, dob, school, profile_pic_url FROM student_info WHERE user_id = $1`
	var info models.StudentInfo
	if err := r.db.GetContext(ctx, &info, infoQuery, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load student info: %w", err)
		}
	} else {
		user.StudentInfo = &info
	}

	return &user, nil
}

// Create persists a new account and, for students, the attached record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	const query = `INSERT INTO users (id, username, password_hash, name, role, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :name, :role, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create user: %w", err)
	}
	if user.StudentInfo != nil {
		user.StudentInfo.UserID = user.ID
		const infoQuery = `INSERT INTO student_info (user_id, first_name, last_name, middle_initial,
            student_number, grade_level, dob, school, profile_pic_url)
            VALUES (:user_id, :first_name, :last_name, :middle_initial, :student_number, :grade_level, :dob, :school, :profile_pic_url)`
		if _, err := tx.NamedExecContext(ctx, infoQuery, user.StudentInfo); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("create student info: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps the account's last successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ListSchedule returns the student's daily schedule in period order.
func (r *UserRepository) ListSchedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, student_id, course, teacher, room, start_time, end_time, position
        FROM schedule_entries WHERE student_id = $1 ORDER BY position`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return entries, nil
}
