package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/internal/scanner/strategy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errDatabaseDown = errors.New("database down")

type sentKey struct{ ticker, action, hash string }

// fakeSentAlertRepo keeps rows in memory; WithinLock applies writes only when fn succeeds.
type fakeSentAlertRepo struct {
	mu      sync.Mutex
	rows    []entity.SentAlert
	failErr error
}

type fakeSentAlertTx struct {
	committed []entity.SentAlert
	pending   []entity.SentAlert
	failErr   error
}

func (f *fakeSentAlertRepo) WithinLock(_ context.Context, fn func(store repository.SentAlertStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx := &fakeSentAlertTx{committed: f.rows, failErr: f.failErr}
	if err := fn(tx); err != nil {
		return err
	}
	f.rows = append(f.rows, tx.pending...)
	return nil
}

func (f *fakeSentAlertRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return (&fakeSentAlertTx{committed: f.rows}).CountSince(context.Background(), since)
}

func (f *fakeSentAlertRepo) FindRecent(context.Context, int) ([]entity.SentAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.SentAlert(nil), f.rows...), nil
}

func (f *fakeSentAlertRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []entity.SentAlert
	for _, r := range f.rows {
		if !r.SentAt.Before(before) {
			kept = append(kept, r)
		}
	}
	n := int64(len(f.rows) - len(kept))
	f.rows = kept
	return n, nil
}

func (f *fakeSentAlertRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (t *fakeSentAlertTx) all() []entity.SentAlert {
	return append(append([]entity.SentAlert(nil), t.committed...), t.pending...)
}

func (t *fakeSentAlertTx) Exists(_ context.Context, ticker, action, hash string) (bool, error) {
	if t.failErr != nil {
		return false, t.failErr
	}
	for _, r := range t.all() {
		if (sentKey{r.Ticker, r.Action, r.EvidenceHash}) == (sentKey{ticker, action, hash}) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeSentAlertTx) CountSince(_ context.Context, since time.Time) (int64, error) {
	if t.failErr != nil {
		return 0, t.failErr
	}
	var n int64
	for _, r := range t.all() {
		if !r.SentAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (t *fakeSentAlertTx) InsertIfAbsent(ctx context.Context, alert *entity.SentAlert) (bool, error) {
	exists, err := t.Exists(ctx, alert.Ticker, alert.Action, alert.EvidenceHash)
	if err != nil || exists {
		return false, err
	}
	t.pending = append(t.pending, *alert)
	return true, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	alerts  []dto.NuclearAlert
	reports []string
	failFor map[string]bool
}

func (n *fakeNotifier) NotifyAlert(_ context.Context, alert dto.NuclearAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[alert.Ticker] {
		return errors.New("smtp: connection refused")
	}
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *fakeNotifier) NotifyReport(_ context.Context, subject string, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, subject)
	return nil
}

func (n *fakeNotifier) sent() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

type fakeStrategy struct {
	source  dto.SignalSource
	result  strategy.Result
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeStrategy) Execute(ctx context.Context) (strategy.Result, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeStrategy) GetSource() dto.SignalSource { return f.source }

type fakeScanRunRepo struct {
	mu        sync.Mutex
	runs      map[string]*entity.ScanRun
	createErr error
}

func newFakeScanRunRepo() *fakeScanRunRepo {
	return &fakeScanRunRepo{runs: map[string]*entity.ScanRun{}}
}

func (f *fakeScanRunRepo) Create(_ context.Context, run *entity.ScanRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	run.ID = uint(len(f.runs) + 1)
	copied := *run
	f.runs[run.RunID] = &copied
	return nil
}

func (f *fakeScanRunRepo) Update(_ context.Context, run *entity.ScanRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *run
	f.runs[run.RunID] = &copied
	return nil
}

func (f *fakeScanRunRepo) FindByRunID(_ context.Context, runID string) (*entity.ScanRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return run, nil
}

func (f *fakeScanRunRepo) FindRecent(_ context.Context, limit int) ([]entity.ScanRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ScanRun
	for _, r := range f.runs {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeScanRunRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, r := range f.runs {
		if r.StartedAt.Before(before) {
			delete(f.runs, id)
			n++
		}
	}
	return n, nil
}

type fakeScanLock struct {
	mu     sync.Mutex
	holder string
	err    error
}

func (f *fakeScanLock) Acquire(_ context.Context, token string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.holder != "" {
		return false, nil
	}
	f.holder = token
	return true, nil
}

func (f *fakeScanLock) Release(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holder == token {
		f.holder = ""
	}
	return nil
}

type fakeScanStatus struct {
	mu   sync.Mutex
	last *dto.LastScan
}

func (f *fakeScanStatus) SaveLast(_ context.Context, last dto.LastScan, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = &last
	return nil
}

func (f *fakeScanStatus) GetLast(context.Context) (*dto.LastScan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, nil
}

type fakeLedgerRepo struct {
	mu        sync.Mutex
	positions []entity.Position
	trades    []entity.Trade
	nextID    uint
	clock     time.Time
	failTrade error
}

func (f *fakeLedgerRepo) Transaction(ctx context.Context, fn func(repo repository.LedgerRepository) error) error {
	f.mu.Lock()
	positions := append([]entity.Position(nil), f.positions...)
	trades := append([]entity.Trade(nil), f.trades...)
	f.mu.Unlock()
	if err := fn(f); err != nil {
		f.mu.Lock()
		f.positions, f.trades = positions, trades
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeLedgerRepo) tick() time.Time {
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeLedgerRepo) CreatePosition(_ context.Context, p *entity.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.CreatedAt = f.tick()
	p.ID = f.nextID
	f.positions = append(f.positions, *p)
	return nil
}

func (f *fakeLedgerRepo) FindOldestPosition(_ context.Context, ticker string) (*entity.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var oldest *entity.Position
	for i := range f.positions {
		p := f.positions[i]
		if p.Ticker == ticker && (oldest == nil || p.CreatedAt.Before(oldest.CreatedAt)) {
			oldest = &p
		}
	}
	return oldest, nil
}

func (f *fakeLedgerRepo) UpdatePositionUnits(_ context.Context, id uint, units decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.positions {
		if f.positions[i].ID == id {
			f.positions[i].Units = units
		}
	}
	return nil
}

func (f *fakeLedgerRepo) DeletePosition(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.positions {
		if f.positions[i].ID == id {
			f.positions = append(f.positions[:i], f.positions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLedgerRepo) FindPositions(context.Context) ([]entity.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Position(nil), f.positions...), nil
}

func (f *fakeLedgerRepo) CreateTrade(_ context.Context, t *entity.Trade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTrade != nil {
		return f.failTrade
	}
	t.CreatedAt = f.tick()
	t.ID = f.nextID
	f.trades = append(f.trades, *t)
	return nil
}

func (f *fakeLedgerRepo) FindRecentTrades(_ context.Context, limit int) ([]entity.Trade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Trade
	for i := len(f.trades) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.trades[i])
	}
	return out, nil
}

func (f *fakeLedgerRepo) RealizedProfit(context.Context) (decimal.Decimal, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	n := 0
	for _, t := range f.trades {
		if t.Action == entity.TradeActionSell {
			total = total.Add(t.Profit)
			n++
		}
	}
	return total, n, nil
}

type fakeSeenRepo struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	failErr error
}

func (f *fakeSeenRepo) HasBeenSeen(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[id]
	return ok, f.failErr
}

func (f *fakeSeenRepo) MarkSeen(_ context.Context, id string, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[string]time.Time{}
	}
	f.seen[id] = time.Now()
	return f.failErr
}

func (f *fakeSeenRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return 0, f.failErr
	}
	var n int64
	for id, at := range f.seen {
		if at.Before(before) {
			delete(f.seen, id)
			n++
		}
	}
	return n, nil
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

type fakeDiscoveryFeed struct {
	items map[string][]dto.DiscoveredSource
}

func (f fakeDiscoveryFeed) FetchItems(_ context.Context, feedURL string) ([]dto.DiscoveredSource, error) {
	items, ok := f.items[feedURL]
	if !ok {
		return nil, repository.ErrSourceUnavailable
	}
	return items, nil
}

type fakePowerTraderRepo struct {
	mu      sync.Mutex
	traders []entity.PowerTrader
	listErr error
}

func (f *fakePowerTraderRepo) ListNames(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.traders))
	for _, t := range f.traders {
		names = append(names, t.Name)
	}
	return names, nil
}

func (f *fakePowerTraderRepo) FindAll(context.Context) ([]entity.PowerTrader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.PowerTrader(nil), f.traders...), nil
}

func (f *fakePowerTraderRepo) ReplaceSource(_ context.Context, source string, traders []entity.PowerTrader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []entity.PowerTrader
	for _, t := range f.traders {
		if t.Source != source {
			kept = append(kept, t)
		}
	}
	for _, t := range traders {
		replaced := false
		for i := range kept {
			if kept[i].Name == t.Name {
				kept[i].Score = t.Score
				replaced = true
			}
		}
		if !replaced {
			kept = append(kept, t)
		}
	}
	f.traders = kept
	return nil
}
