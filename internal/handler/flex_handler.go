package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northside-portal/portal-api/internal/service"
	appErrors "github.com/northside-portal/portal-api/pkg/errors"
	"github.com/northside-portal/portal-api/pkg/response"
)

// FlexHandler exposes the flex registration endpoints.
type FlexHandler struct {
	flexes *service.FlexService
}

// NewFlexHandler constructs FlexHandler.
func NewFlexHandler(flexes *service.FlexService) *FlexHandler {
	return &FlexHandler{flexes: flexes}
}

// List godoc
// @Summary List flex periods
// @Tags Flex
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /flexes [get]
func (h *FlexHandler) List(c *gin.Context) {
	periods, err := h.flexes.ListPeriods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Options godoc
// @Summary Get the options of a flex period
// @Tags Flex
// @Produce json
// @Param flexId path string true "Flex period ID"
// @Success 200 {object} response.Envelope
// @Router /flexes/{flexId} [get]
func (h *FlexHandler) Options(c *gin.Context) {
	period, err := h.flexes.GetPeriod(c.Request.Context(), c.Param("flexId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period, nil)
}

// Register godoc
// @Summary Register the authenticated student for a flex option
// @Tags Flex
// @Produce json
// @Param flexId path string true "Flex period ID"
// @Param optionId path string true "Flex option ID"
// @Success 200 {object} models.RegistrationResult
// @Router /flexes/{flexId}/{optionId} [post]
func (h *FlexHandler) Register(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.flexes.Register(c.Request.Context(), claims.UserID, c.Param("flexId"), c.Param("optionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	// The mobile client reads success/message at the top level.
	c.JSON(http.StatusOK, result)
}
