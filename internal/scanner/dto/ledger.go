package dto

import (
	"golang-insider-scanner/internal/entity"

	"github.com/shopspring/decimal"
)

// TradeRequest is the body of a buy or sell request. Units is optional for sells.
type TradeRequest struct {
	Ticker string `json:"ticker" form:"ticker" validate:"required,max=10"`
	Price  string `json:"price" form:"price" validate:"required,numeric"`
	Units  string `json:"units" form:"units" validate:"omitempty,numeric"`
}

// SellResult describes a closed or reduced position.
type SellResult struct {
	Ticker        string          `json:"ticker"`
	Units         decimal.Decimal `json:"units" swaggertype:"string"`
	BuyPrice      decimal.Decimal `json:"buy_price" swaggertype:"string"`
	SellPrice     decimal.Decimal `json:"sell_price" swaggertype:"string"`
	Profit        decimal.Decimal `json:"profit" swaggertype:"string"`
	ProfitPercent decimal.Decimal `json:"profit_percent" swaggertype:"string"`
	Closed        bool            `json:"closed"`
}

// LedgerSummary is the status page view of the ledger.
type LedgerSummary struct {
	Mode         string            `json:"mode"`
	Positions    []entity.Position `json:"positions"`
	RecentTrades []entity.Trade    `json:"recent_trades"`
	RealizedPnL  decimal.Decimal   `json:"realized_pnl" swaggertype:"string"`
	ClosedTrades int               `json:"closed_trades"`
}
