package http

import (
	"errors"
	"net/http"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LedgerHandler handles JSON requests for the trade ledger.
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *logger.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService service.LedgerService, logger *logger.Logger) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, logger: logger}
}

// RegisterRoutes registers the ledger routes to the Echo group.
func (h *LedgerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSummary)
	g.POST("/buy", h.Buy)
	g.POST("/sell", h.Sell)
}

// GetSummary godoc
// @Summary Ledger summary
// @Description Open positions, recent trades and realized profit
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.LedgerSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /ledger [get]
func (h *LedgerHandler) GetSummary(c echo.Context) error {
	summary, err := h.ledgerService.Summary(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to load ledger", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load ledger"})
	}
	return c.JSON(http.StatusOK, summary)
}

// Buy godoc
// @Summary Record a buy
// @Description Opens a position. Units default to 1.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   trade  body  dto.TradeRequest  true  "Trade"
// @Success 201 {object} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ledger/buy [post]
func (h *LedgerHandler) Buy(c echo.Context) error {
	req, err := bindTrade(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	trade, err := h.ledgerService.Buy(c.Request().Context(), req)
	if err != nil {
		return tradeError(c, err)
	}
	return c.JSON(http.StatusCreated, trade)
}

// Sell godoc
// @Summary Record a sell
// @Description Reduces or closes the oldest open position for the ticker
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   trade  body  dto.TradeRequest  true  "Trade"
// @Success 200 {object} dto.SellResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ledger/sell [post]
func (h *LedgerHandler) Sell(c echo.Context) error {
	req, err := bindTrade(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	result, err := h.ledgerService.Sell(c.Request().Context(), req)
	if err != nil {
		return tradeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func bindTrade(c echo.Context) (dto.TradeRequest, error) {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return req, errors.New("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, errors.New("Invalid trade: ticker and numeric price are required")
	}
	return req, nil
}

func tradeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTrade):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrPositionNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to record trade"})
	}
}
