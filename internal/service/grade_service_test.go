package service

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
)

type mockGradeRepo struct {
	grades []models.Grade
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	return m.grades, nil
}

func (m *mockGradeRepo) FindByIDAndStudent(ctx context.Context, id, studentID string) (*models.Grade, error) {
	for _, g := range m.grades {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, sql.ErrNoRows
}

func gradesFixture(n int) []models.Grade {
	grades := make([]models.Grade, 0, n)
	courses := []string{"HS1 Algebra 1", "HS1 US History", "HS1 AP Lang", "HS1 Physics", "HS1 Colloquium", "HS1 Art 1"}
	for i := 0; i < n; i++ {
		grades = append(grades, models.Grade{
			ID:          courses[i%len(courses)] + "-id",
			Course:      courses[i%len(courses)],
			Teacher:     "Dr. Stanley",
			Grade:       "98",
			LetterGrade: "A",
		})
	}
	return grades
}

func TestGradeServiceList(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{grades: gradesFixture(6)}, nil)

	grades, err := svc.List(context.Background(), "stu-1", "")
	require.NoError(t, err)
	assert.Len(t, grades, 6)
}

func TestGradeServiceListCurrentTerm(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{grades: gradesFixture(6)}, nil)

	grades, err := svc.List(context.Background(), "stu-1", "currentTerm")
	require.NoError(t, err)
	assert.Len(t, grades, 4)
}

func TestGradeServiceDetailNotFound(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, nil)

	_, err := svc.Detail(context.Background(), "stu-1", "missing")
	requireAppError(t, err, "NOT_FOUND", http.StatusNotFound)
}

func TestGradeServiceExportCSV(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{grades: gradesFixture(2)}, nil)

	report, err := svc.Export(context.Background(), "stu-1", "John Appleseed", "csv")
	require.NoError(t, err)
	assert.Equal(t, "report-card.csv", report.FileName)
	assert.Equal(t, "text/csv", report.ContentType)

	lines := strings.Split(strings.TrimSpace(string(report.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course,Teacher,Grade,Letter", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "HS1 Algebra 1")
}

func TestGradeServiceExportDefaultsToCSV(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{grades: gradesFixture(1)}, nil)

	report, err := svc.Export(context.Background(), "stu-1", "John Appleseed", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
}

func TestGradeServiceExportPDF(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{grades: gradesFixture(2)}, nil)

	report, err := svc.Export(context.Background(), "stu-1", "John Appleseed", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "report-card.pdf", report.FileName)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasPrefix(string(report.Content), "%PDF"))
}

func TestGradeServiceExportUnknownFormat(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, nil)

	_, err := svc.Export(context.Background(), "stu-1", "John Appleseed", "docx")
	requireAppError(t, err, appErrors.ErrValidation.Code, http.StatusBadRequest)
}
