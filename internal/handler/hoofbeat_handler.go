package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/service"
	"github.com/northside-portal/portal-api/pkg/response"
)

// HoofbeatHandler exposes the news feed endpoints.
type HoofbeatHandler struct {
	hoofbeat *service.HoofbeatService
}

// NewHoofbeatHandler constructs HoofbeatHandler.
func NewHoofbeatHandler(hoofbeat *service.HoofbeatService) *HoofbeatHandler {
	return &HoofbeatHandler{hoofbeat: hoofbeat}
}

// FrontPage godoc
// @Summary Get the Hoofbeat front page
// @Tags Hoofbeat
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hoofbeat [get]
func (h *HoofbeatHandler) FrontPage(c *gin.Context) {
	page, err := h.hoofbeat.FrontPage(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Article godoc
// @Summary Get an article by slug
// @Tags Hoofbeat
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} response.Envelope
// @Router /hoofbeat/{slug} [get]
func (h *HoofbeatHandler) Article(c *gin.Context) {
	article, err := h.hoofbeat.Article(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}
