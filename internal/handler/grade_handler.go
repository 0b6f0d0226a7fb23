package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/service"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
	"github.com/northside-portal/portal-api/pkg/response"
)

// GradeHandler exposes the grades endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List the authenticated student's grades
// @Tags Grades
// @Produce json
// @Param filter query string false "Filter (currentTerm)"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grades, err := h.grades.List(c.Request.Context(), claims.UserID, c.Query("filter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// Detail godoc
// @Summary Get the grade breakdown for one course
// @Tags Grades
// @Produce json
// @Param courseId path string true "Course grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{courseId} [get]
func (h *GradeHandler) Detail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grade, err := h.grades.Detail(c.Request.Context(), claims.UserID, c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Export godoc
// @Summary Download the report card as csv or pdf
// @Tags Grades
// @Produce octet-stream
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.grades.Export(c.Request.Context(), claims.UserID, claims.Name, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
