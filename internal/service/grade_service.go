package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/northside-portal/portal-api/internal/models"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
	"github.com/northside-portal/portal-api/pkg/export"
)

type gradeRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
	FindByIDAndStudent(ctx context.Context, id, studentID string) (*models.Grade, error)
}

// GradeExport is a rendered report card download.
type GradeExport struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GradeService serves the grades screens and the report card export.
type GradeService struct {
	repo   gradeRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(repo gradeRepository, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, csv: export.NewCSVExporter(), pdf: export.NewPDFExporter(), logger: logger}
}

// List returns the student's grades. filter=currentTerm limits the list to
// the first four courses, matching the legacy behavior.
func (s *GradeService) List(ctx context.Context, studentID, filter string) ([]models.Grade, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	if filter == "currentTerm" && len(grades) > 4 {
		grades = grades[:4]
	}
	if grades == nil {
		grades = []models.Grade{}
	}
	return grades, nil
}

// Detail returns one course grade with its breakdown, scoped to the owner.
func (s *GradeService) Detail(ctx context.Context, studentID, courseID string) (*models.Grade, error) {
	grade, err := s.repo.FindByIDAndStudent(ctx, courseID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Grade details not found for this course.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	return grade, nil
}

// Export renders the student's report card as csv or pdf.
func (s *GradeService) Export(ctx context.Context, studentID, studentName, format string) (*GradeExport, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	dataset := export.Dataset{
		Headers: []string{"Course", "Teacher", "Grade", "Letter"},
		Rows:    make([]map[string]string, 0, len(grades)),
	}
	for _, grade := range grades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":  grade.Course,
			"Teacher": grade.Teacher,
			"Grade":   grade.Grade,
			"Letter":  grade.LetterGrade,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
		}
		return &GradeExport{FileName: "report-card.csv", ContentType: "text/csv", Content: content}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Report Card", studentName)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
		}
		return &GradeExport{FileName: "report-card.pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Wrap(fmt.Errorf("format %q", format), appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
}
