package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/service"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
	"github.com/northside-portal/portal-api/pkg/response"
)

// ProfileHandler exposes the profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Card godoc
// @Summary Get the authenticated student's profile card
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Card(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	card, err := h.profiles.Card(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// Info godoc
// @Summary Get the authenticated student's detailed record
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/info [get]
func (h *ProfileHandler) Info(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	info, err := h.profiles.Info(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// Schedule godoc
// @Summary Get the authenticated student's daily schedule
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/schedule [get]
func (h *ProfileHandler) Schedule(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	entries, err := h.profiles.Schedule(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
