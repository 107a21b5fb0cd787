package http

import (
	"context"
	"sync"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type fakeScanner struct {
	mu       sync.Mutex
	result   dto.ScanResult
	scanning bool
	triggers []string
	ctxErrs  []error
	ctxIDs   []interface{}
}

func (f *fakeScanner) RunScan(ctx context.Context, trigger string) dto.ScanResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.ctxIDs = append(f.ctxIDs, ctx.Value(logger.RequestIDKey))
	return f.result
}

func (f *fakeScanner) IsScanning() bool { return f.scanning }

type fakeLedger struct {
	mode    string
	summary dto.LedgerSummary
	buys    []dto.TradeRequest
	sells   []dto.TradeRequest
	sellErr error
}

func (f *fakeLedger) Buy(_ context.Context, req dto.TradeRequest) (*entity.Trade, error) {
	f.buys = append(f.buys, req)
	return &entity.Trade{Ticker: req.Ticker, Action: entity.TradeActionBuy, Price: decimal.RequireFromString(req.Price), Units: decimal.NewFromInt(1)}, nil
}

func (f *fakeLedger) Sell(_ context.Context, req dto.TradeRequest) (*dto.SellResult, error) {
	f.sells = append(f.sells, req)
	if f.sellErr != nil {
		return nil, f.sellErr
	}
	return &dto.SellResult{Ticker: req.Ticker, Units: decimal.NewFromInt(2), ProfitPercent: decimal.RequireFromString("12.5"), Closed: true}, nil
}

func (f *fakeLedger) Summary(context.Context) (*dto.LedgerSummary, error) {
	s := f.summary
	s.Mode = f.mode
	return &s, nil
}

func (f *fakeLedger) Mode() string { return f.mode }

type fakeHistory struct {
	runs []*dto.ScanRunResponse
	last *dto.LastScan
}

func (f *fakeHistory) GetScanRun(_ context.Context, runID string) (*dto.ScanRunResponse, error) {
	for _, r := range f.runs {
		if r.RunID == runID {
			return r, nil
		}
	}
	return nil, service.ErrScanRunNotFound
}

func (f *fakeHistory) ListScanRuns(_ context.Context, limit int) ([]*dto.ScanRunResponse, error) {
	if len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeHistory) LastScan(context.Context) (*dto.LastScan, error) { return f.last, nil }

type fakeIntelligence struct {
	calls int
}

func (f *fakeIntelligence) Refresh(context.Context) (*dto.IntelligenceReport, error) {
	f.calls++
	return &dto.IntelligenceReport{GeneratedAt: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), NewTraders: []string{"Alice Active"}}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}
