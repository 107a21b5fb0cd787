package http

import (
	"net/http"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IntelligenceHandler exposes the power trader refresh.
type IntelligenceHandler struct {
	intelligenceService service.IntelligenceService
	logger              *logger.Logger
}

// NewIntelligenceHandler creates a new IntelligenceHandler.
func NewIntelligenceHandler(intelligenceService service.IntelligenceService, logger *logger.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{intelligenceService: intelligenceService, logger: logger}
}

// RegisterRoutes registers the intelligence routes to the Echo group.
func (h *IntelligenceHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/refresh", h.Refresh)
}

// Refresh godoc
// @Summary Refresh power traders
// @Description Re-ranks congress traders, checks every feed and collects discovery items
// @Tags intelligence
// @Produce  json
// @Param   X-Scan-Token  header  string  true  "Scan token"
// @Success 200 {object} dto.IntelligenceReport
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /intelligence/refresh [post]
func (h *IntelligenceHandler) Refresh(c echo.Context) error {
	report, err := h.intelligenceService.Refresh(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Intelligence refresh failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Intelligence refresh failed"})
	}
	return c.JSON(http.StatusOK, report)
}
