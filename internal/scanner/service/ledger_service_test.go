package service

import (
	"context"
	"testing"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLedgerService_BuyDefaultsToOneUnit(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), true, 10)

	trade, err := svc.Buy(context.Background(), dto.TradeRequest{Ticker: " nvda ", Price: "120.50"})
	require.NoError(t, err)

	assert.Equal(t, "NVDA", trade.Ticker)
	assert.True(t, trade.Units.Equal(dec("1")))
	assert.True(t, trade.IsPaper)
	require.Len(t, repo.positions, 1)
	assert.True(t, repo.positions[0].BuyPrice.Equal(dec("120.50")))
	assert.Equal(t, entity.TradeActionBuy, repo.trades[0].Action)
}

func TestLedgerService_RejectsInvalidTrades(t *testing.T) {
	svc := NewLedgerService(&fakeLedgerRepo{}, logger.NewNop(), true, 10)

	cases := []dto.TradeRequest{
		{Ticker: "", Price: "10"},
		{Ticker: "AAPL", Price: "abc"},
		{Ticker: "AAPL", Price: "0"},
		{Ticker: "AAPL", Price: "10", Units: "-2"},
	}
	for _, req := range cases {
		_, err := svc.Buy(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTrade, "%+v", req)
	}
}

func TestLedgerService_SellClosesOldestPositionFirst(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), true, 10)
	ctx := context.Background()

	_, err := svc.Buy(ctx, dto.TradeRequest{Ticker: "AAPL", Price: "100", Units: "10"})
	require.NoError(t, err)
	_, err = svc.Buy(ctx, dto.TradeRequest{Ticker: "AAPL", Price: "150", Units: "5"})
	require.NoError(t, err)

	result, err := svc.Sell(ctx, dto.TradeRequest{Ticker: "aapl", Price: "110"})
	require.NoError(t, err)

	assert.True(t, result.Closed)
	assert.True(t, result.Units.Equal(dec("10")))
	assert.True(t, result.BuyPrice.Equal(dec("100")))
	assert.True(t, result.Profit.Equal(dec("100")))
	assert.True(t, result.ProfitPercent.Equal(dec("10")))
	require.Len(t, repo.positions, 1)
	assert.True(t, repo.positions[0].BuyPrice.Equal(dec("150")))
}

func TestLedgerService_PartialSellReducesUnits(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), false, 10)
	ctx := context.Background()

	_, err := svc.Buy(ctx, dto.TradeRequest{Ticker: "TSLA", Price: "200", Units: "4"})
	require.NoError(t, err)

	result, err := svc.Sell(ctx, dto.TradeRequest{Ticker: "TSLA", Price: "150", Units: "1.5"})
	require.NoError(t, err)

	assert.False(t, result.Closed)
	assert.True(t, result.Profit.Equal(dec("-75")))
	assert.True(t, result.ProfitPercent.Equal(dec("-25")))
	require.Len(t, repo.positions, 1)
	assert.True(t, repo.positions[0].Units.Equal(dec("2.5")))
}

func TestLedgerService_OversellIsCappedAtPosition(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), true, 10)
	ctx := context.Background()

	_, err := svc.Buy(ctx, dto.TradeRequest{Ticker: "AMD", Price: "50", Units: "2"})
	require.NoError(t, err)

	result, err := svc.Sell(ctx, dto.TradeRequest{Ticker: "AMD", Price: "60", Units: "9"})
	require.NoError(t, err)
	assert.True(t, result.Closed)
	assert.True(t, result.Units.Equal(dec("2")))
	assert.True(t, result.Profit.Equal(dec("20")))
	assert.Empty(t, repo.positions)
}

func TestLedgerService_SellUnknownTicker(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), true, 10)

	_, err := svc.Sell(context.Background(), dto.TradeRequest{Ticker: "META", Price: "10"})
	assert.ErrorIs(t, err, ErrPositionNotFound)
	assert.Empty(t, repo.trades)
}

func TestLedgerService_FailedTradeRollsBack(t *testing.T) {
	repo := &fakeLedgerRepo{failTrade: errDatabaseDown}
	svc := NewLedgerService(repo, logger.NewNop(), true, 10)

	_, err := svc.Buy(context.Background(), dto.TradeRequest{Ticker: "MSFT", Price: "300"})
	assert.ErrorIs(t, err, errDatabaseDown)
	assert.Empty(t, repo.positions)
}

func TestLedgerService_Summary(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewLedgerService(repo, logger.NewNop(), true, 2)
	ctx := context.Background()

	_, _ = svc.Buy(ctx, dto.TradeRequest{Ticker: "AAPL", Price: "100", Units: "2"})
	_, _ = svc.Buy(ctx, dto.TradeRequest{Ticker: "NVDA", Price: "100", Units: "1"})
	_, err := svc.Sell(ctx, dto.TradeRequest{Ticker: "AAPL", Price: "125"})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModePaper, summary.Mode)
	assert.Len(t, summary.Positions, 1)
	assert.Len(t, summary.RecentTrades, 2)
	assert.Equal(t, entity.TradeActionSell, summary.RecentTrades[0].Action)
	assert.True(t, summary.RealizedPnL.Equal(dec("50")))
	assert.Equal(t, 1, summary.ClosedTrades)
}

func TestLedgerMode(t *testing.T) {
	assert.Equal(t, ModePaper, LedgerMode(true))
	assert.Equal(t, ModeLive, LedgerMode(false))
}
