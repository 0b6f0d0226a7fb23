package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northside-portal/portal-api/internal/models"
)

// GradeRepository handles persistence of course grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListByStudent returns all grades for the student, course order.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	const query = `SELECT id, student_id, course, teacher, grade, letter_grade, is_failing, created_at, updated_at
        FROM grades WHERE student_id = $1 ORDER BY course`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByIDAndStudent returns one grade, including its category and
// assignment breakdown, scoped to the owning student.
func (r *GradeRepository) FindByIDAndStudent(ctx context.Context, id, studentID string) (*models.Grade, error) {
	const query = `SELECT id, student_id, course, teacher, grade, letter_grade, is_failing, created_at, updated_at
        FROM grades WHERE id = $1 AND student_id = $2`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, id, studentID); err != nil {
		return nil, err
	}

	const categoriesQuery = `SELECT id, grade_id, name, percentage, score
        FROM grade_categories WHERE grade_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &grade.Categories, categoriesQuery, id); err != nil {
		return nil, fmt.Errorf("load grade categories: %w", err)
	}

	const assignmentsQuery = `SELECT id, grade_id, name, category, due_date, score
        FROM grade_assignments WHERE grade_id = $1 ORDER BY due_date DESC NULLS LAST, name`
	if err := r.db.SelectContext(ctx, &grade.Assignments, assignmentsQuery, id); err != nil {
		return nil, fmt.Errorf("load grade assignments: %w", err)
	}

	return &grade, nil
}
