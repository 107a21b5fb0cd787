package http

import (
	"context"
	"net/http"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TriggerHTTP marks scans started through the API.
const TriggerHTTP = "http"

// ScanHandler handles scan triggers and health checks.
type ScanHandler struct {
	scannerService service.ScannerService
	ledgerService  service.LedgerService
	logger         *logger.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scannerService service.ScannerService, ledgerService service.LedgerService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{scannerService: scannerService, ledgerService: ledgerService, logger: logger}
}

// RegisterRoutes registers the scan trigger on a token protected group.
func (h *ScanHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.TriggerScan)
}

// RegisterHealthRoute registers the unauthenticated health check.
func (h *ScanHandler) RegisterHealthRoute(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// TriggerScan godoc
// @Summary Run a scan
// @Description Runs one scan synchronously. Returns status skipped when a scan is already running.
// @Tags scans
// @Produce  json
// @Param   X-Scan-Token  header  string  true  "Scan token"
// @Success 200 {object} dto.ScanResult
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ScanResult
// @Router /scan [post]
func (h *ScanHandler) TriggerScan(c echo.Context) error {
	// A dropped client must not abort a scan that may already be dispatching alerts.
	result := h.scannerService.RunScan(context.WithoutCancel(c.Request().Context()), TriggerHTTP)
	if result.Status == dto.ScanError {
		return c.JSON(http.StatusInternalServerError, result)
	}
	return c.JSON(http.StatusOK, result)
}

// Health reports the trading mode and whether a scan is running. It is served outside /api/v1.
func (h *ScanHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Mode:     h.ledgerService.Mode(),
		Scanning: h.scannerService.IsScanning(),
	})
}
