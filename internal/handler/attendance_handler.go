package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/service"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
	"github.com/northside-portal/portal-api/pkg/response"
)

// AttendanceHandler exposes the attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Overview godoc
// @Summary Get the authenticated student's attendance summary and tardies
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) Overview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	overview, err := h.attendance.Overview(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// TardyDetail godoc
// @Summary Get one tardy record
// @Tags Attendance
// @Produce json
// @Param tardyId path string true "Tardy record ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/tardies/{tardyId} [get]
func (h *AttendanceHandler) TardyDetail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.attendance.TardyDetail(c.Request.Context(), claims.UserID, c.Param("tardyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
