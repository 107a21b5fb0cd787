package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is an open paper (or live) holding.
type Position struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Ticker    string          `gorm:"not null;index" json:"ticker"`
	BuyPrice  decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"buy_price" swaggertype:"string"`
	Units     decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"units" swaggertype:"string"`
	IsPaper   bool            `gorm:"not null" json:"is_paper"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Position) TableName() string {
	return "positions"
}

type TradeAction string

const (
	TradeActionBuy  TradeAction = "BUY"
	TradeActionSell TradeAction = "SELL"
)

// Trade is an append-only ledger entry.
type Trade struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Ticker        string          `gorm:"not null;index" json:"ticker"`
	Action        TradeAction     `gorm:"not null" json:"action"`
	Price         decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"price" swaggertype:"string"`
	Units         decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"units" swaggertype:"string"`
	Profit        decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0" json:"profit" swaggertype:"string"`
	ProfitPercent decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"profit_percent" swaggertype:"string"`
	IsPaper       bool            `gorm:"not null" json:"is_paper"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
