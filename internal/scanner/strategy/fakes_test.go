package strategy

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
)

type fakeSeenRepo struct {
	mu      sync.Mutex
	seen    map[string]string
	failErr error
}

func newFakeSeenRepo() *fakeSeenRepo {
	return &fakeSeenRepo{seen: map[string]string{}}
}

func (f *fakeSeenRepo) HasBeenSeen(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return false, f.failErr
	}
	_, ok := f.seen[id]
	return ok, nil
}

func (f *fakeSeenRepo) MarkSeen(_ context.Context, id string, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := f.seen[id]; !ok {
		f.seen[id] = source
	}
	return nil
}

func (f *fakeSeenRepo) DeleteBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func (f *fakeSeenRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

type fakePowerTraderRepo struct {
	names []string
	calls int
	err   error
}

func (f *fakePowerTraderRepo) ListNames(context.Context) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func (f *fakePowerTraderRepo) FindAll(context.Context) ([]entity.PowerTrader, error) { return nil, nil }

func (f *fakePowerTraderRepo) ReplaceSource(context.Context, string, []entity.PowerTrader) error {
	return nil
}

type fakeCongressFeed struct {
	trades []dto.CongressTrade
	err    error
}

func (f fakeCongressFeed) FetchTrades(context.Context) ([]dto.CongressTrade, error) {
	return f.trades, f.err
}

type fakeSECFeed struct {
	txs []dto.InsiderTransaction
	err error
}

func (f fakeSECFeed) FetchTransactions(context.Context, int) ([]dto.InsiderTransaction, error) {
	return f.txs, f.err
}

type fakePolymarketFeed struct {
	markets []dto.PredictionMarket
	err     error
}

func (f fakePolymarketFeed) FetchMarkets(context.Context) ([]dto.PredictionMarket, error) {
	return f.markets, f.err
}

var errDatabaseDown = errors.New("database down")

func strategyConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scanner.LookbackDays = 7
	cfg.Sources.Congress = config.Congress{Enabled: true, MinAmount: 15000, PowerConfidence: 95, BaseConfidence: 80}
	cfg.Sources.SEC = config.SEC{Enabled: true, MinValue: 100000, OfficerConfidence: 85, BaseConfidence: 75, ClusterMinSize: 3, ClusterConfidence: 90}
	cfg.Sources.Polymarket = config.Polymarket{Enabled: true, MinVolume: 100000, Confidence: 70}
	return cfg
}
