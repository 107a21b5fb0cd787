package http

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/status.html
var templateFS embed.FS

var statusTemplate = template.Must(template.ParseFS(templateFS, "templates/status.html"))

// StatusHandler renders the operator status page and its trade forms.
type StatusHandler struct {
	ledgerService  service.LedgerService
	historyService service.ScanHistoryService
	scannerService service.ScannerService
	logger         *logger.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(ledgerService service.LedgerService, historyService service.ScanHistoryService, scannerService service.ScannerService, logger *logger.Logger) *StatusHandler {
	return &StatusHandler{
		ledgerService:  ledgerService,
		historyService: historyService,
		scannerService: scannerService,
		logger:         logger,
	}
}

// RegisterRoutes registers the status page routes on a basic auth group.
func (h *StatusHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Index)
	g.POST("/buy", h.Buy)
	g.POST("/sell", h.Sell)
}

type statusView struct {
	Ledger   *dto.LedgerSummary
	LastScan *dto.LastScan
	Scanning bool
	Message  string
	Failed   bool
}

// Index renders the status page.
func (h *StatusHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	summary, err := h.ledgerService.Summary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load ledger for status page", logger.ErrorField(err))
		return c.String(http.StatusInternalServerError, "Failed to load ledger")
	}
	last, err := h.historyService.LastScan(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to load last scan", logger.ErrorField(err))
	}

	view := statusView{
		Ledger:   summary,
		LastScan: last,
		Scanning: h.scannerService.IsScanning(),
		Message:  c.QueryParam("msg"),
		Failed:   c.QueryParam("error") == "1",
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return statusTemplate.Execute(c.Response(), view)
}

// Buy handles the buy form and redirects back to the page.
func (h *StatusHandler) Buy(c echo.Context) error {
	req, err := bindTrade(c)
	if err == nil {
		_, err = h.ledgerService.Buy(c.Request().Context(), req)
	}
	if err != nil {
		return redirectWith(c, err.Error(), true)
	}
	return redirectWith(c, "Bought "+req.Ticker, false)
}

// Sell handles the sell form and redirects back to the page.
func (h *StatusHandler) Sell(c echo.Context) error {
	req, err := bindTrade(c)
	var result *dto.SellResult
	if err == nil {
		result, err = h.ledgerService.Sell(c.Request().Context(), req)
	}
	if err != nil {
		return redirectWith(c, err.Error(), true)
	}
	return redirectWith(c, "Sold "+result.Units.String()+" "+result.Ticker+" ("+result.ProfitPercent.StringFixed(2)+"%)", false)
}

func redirectWith(c echo.Context, msg string, failed bool) error {
	q := url.Values{}
	q.Set("msg", msg)
	if failed {
		q.Set("error", "1")
	}
	return c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}
