package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultScanListLimit = 20
	maxScanListLimit     = 200
)

// ScanHistoryHandler handles HTTP requests for past scans.
type ScanHistoryHandler struct {
	historyService service.ScanHistoryService
	logger         *logger.Logger
}

// NewScanHistoryHandler creates a new ScanHistoryHandler.
func NewScanHistoryHandler(historyService service.ScanHistoryService, logger *logger.Logger) *ScanHistoryHandler {
	return &ScanHistoryHandler{historyService: historyService, logger: logger}
}

// RegisterRoutes registers the scan history routes to the Echo group.
func (h *ScanHistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListScanRuns)
	g.GET("/:id", h.GetScanRun)
}

// ListScanRuns godoc
// @Summary List scan runs
// @Description Most recent scan runs, newest first
// @Tags scans
// @Produce  json
// @Param   limit  query  int  false  "Maximum rows (default 20, max 200)"
// @Success 200 {array} dto.ScanRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scans [get]
func (h *ScanHistoryHandler) ListScanRuns(c echo.Context) error {
	limit := defaultScanListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = min(n, maxScanListLimit)
	}

	runs, err := h.historyService.ListScanRuns(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list scan runs"})
	}
	return c.JSON(http.StatusOK, runs)
}

// GetScanRun godoc
// @Summary Get a scan run
// @Description Get one scan run with its full summary
// @Tags scans
// @Produce  json
// @Param   id  path  string  true  "Run ID"
// @Success 200 {object} dto.ScanRunResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scans/{id} [get]
func (h *ScanHistoryHandler) GetScanRun(c echo.Context) error {
	run, err := h.historyService.GetScanRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScanRunNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Scan run not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}
