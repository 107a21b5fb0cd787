package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/market"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/internal/scanner/strategy"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/utils"
)

// PowerTraderSourceCongress tags registry rows produced by the ranking.
const PowerTraderSourceCongress = "congress"

const (
	healthOK       = "ok"
	healthStale    = "stale"
	healthDown     = "down"
	healthDisabled = "disabled"
)

// IntelligenceService refreshes the power trader registry and watches the feeds.
type IntelligenceService interface {
	Refresh(ctx context.Context) (*dto.IntelligenceReport, error)
}

// NewIntelligenceService creates a new IntelligenceService.
func NewIntelligenceService(
	cfg *config.Config,
	log *logger.Logger,
	congressFeed repository.CongressFeedRepository,
	secFeed repository.SECFeedRepository,
	polymarketFeed repository.PolymarketFeedRepository,
	discoveryFeed repository.DiscoveryFeedRepository,
	powerRepo repository.PowerTraderRepository,
	registry *strategy.PowerTraderRegistry,
	notifier Notifier,
) IntelligenceService {
	return &intelligenceService{
		cfg:            cfg,
		logger:         log,
		congressFeed:   congressFeed,
		secFeed:        secFeed,
		polymarketFeed: polymarketFeed,
		discoveryFeed:  discoveryFeed,
		powerRepo:      powerRepo,
		registry:       registry,
		notifier:       notifier,
		now:            time.Now,
	}
}

type intelligenceService struct {
	cfg            *config.Config
	logger         *logger.Logger
	congressFeed   repository.CongressFeedRepository
	secFeed        repository.SECFeedRepository
	polymarketFeed repository.PolymarketFeedRepository
	discoveryFeed  repository.DiscoveryFeedRepository
	powerRepo      repository.PowerTraderRepository
	registry       *strategy.PowerTraderRegistry
	notifier       Notifier
	now            func() time.Time
}

// Refresh re-ranks congress traders, checks every feed and collects discovery items.
// Only registry persistence failures are returned as errors.
func (s *intelligenceService) Refresh(ctx context.Context) (*dto.IntelligenceReport, error) {
	now := s.now()
	report := &dto.IntelligenceReport{
		GeneratedAt:  now,
		PowerTraders: []dto.RankedTrader{},
		NewTraders:   []string{},
		Discoveries:  []dto.DiscoveredSource{},
	}

	var trades []dto.CongressTrade
	var wg sync.WaitGroup
	health := make([]dto.SourceHealth, 3)
	checks := []func(){
		func() {
			health[0] = s.checkSource(ctx, s.cfg.Sources.Congress.Enabled, dto.SourceCongress, func(ctx context.Context) (int, time.Time, error) {
				var err error
				trades, err = s.congressFeed.FetchTrades(ctx)
				return len(trades), latestCongressDate(trades), err
			})
		},
		func() {
			health[1] = s.checkSource(ctx, s.cfg.Sources.SEC.Enabled, dto.SourceSECForm4, func(ctx context.Context) (int, time.Time, error) {
				txs, err := s.secFeed.FetchTransactions(ctx, s.cfg.Scanner.LookbackDays)
				return len(txs), latestFilingDate(txs), err
			})
		},
		func() {
			health[2] = s.checkSource(ctx, s.cfg.Sources.Polymarket.Enabled, dto.SourcePolymarket, func(ctx context.Context) (int, time.Time, error) {
				markets, err := s.polymarketFeed.FetchMarkets(ctx)
				return len(markets), time.Time{}, err
			})
		},
	}
	for _, check := range checks {
		check := check
		wg.Add(1)
		utils.GoSafe(s.logger, func() {
			defer wg.Done()
			check()
		})
	}
	discoveries := s.discover(ctx)
	wg.Wait()
	report.SourceHealth = health
	report.Discoveries = discoveries

	if len(trades) > 0 {
		since := now.AddDate(0, 0, -s.cfg.Intelligence.LookbackDays)
		report.PowerTraders = RankTraders(trades, since, s.cfg.Intelligence)
	}
	if len(report.PowerTraders) > 0 {
		newTraders, err := s.replaceRegistry(ctx, report.PowerTraders)
		if err != nil {
			return report, err
		}
		report.NewTraders = newTraders
		report.RegistryUpdate = true
	} else {
		s.logger.WarnContext(ctx, "No qualifying power traders, registry left unchanged")
	}

	s.logger.InfoContext(ctx, "Intelligence refresh completed",
		logger.IntField("power_traders", len(report.PowerTraders)),
		logger.IntField("new_traders", len(report.NewTraders)),
		logger.IntField("discoveries", len(report.Discoveries)))

	if len(report.NewTraders) > 0 {
		subject := fmt.Sprintf("INTEL: %d new power traders", len(report.NewTraders))
		if err := s.notifier.NotifyReport(ctx, subject, renderIntelligenceReport(report)); err != nil {
			s.logger.ErrorContext(ctx, "Failed to send intelligence report", logger.ErrorField(err))
		}
	}
	return report, nil
}

func (s *intelligenceService) replaceRegistry(ctx context.Context, ranked []dto.RankedTrader) ([]string, error) {
	existing, err := s.powerRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list power traders: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		known[strings.ToLower(name)] = struct{}{}
	}

	newTraders := []string{}
	rows := make([]entity.PowerTrader, 0, len(ranked))
	for _, r := range ranked {
		if _, ok := known[strings.ToLower(r.Name)]; !ok {
			newTraders = append(newTraders, r.Name)
		}
		rows = append(rows, entity.PowerTrader{Name: r.Name, Source: PowerTraderSourceCongress, Score: r.Score})
	}

	if err := s.powerRepo.ReplaceSource(ctx, PowerTraderSourceCongress, rows); err != nil {
		return nil, fmt.Errorf("replace power traders: %w", err)
	}
	s.registry.Invalidate()
	return newTraders, nil
}

func (s *intelligenceService) checkSource(ctx context.Context, enabled bool, source dto.SignalSource, fetch func(ctx context.Context) (int, time.Time, error)) dto.SourceHealth {
	health := dto.SourceHealth{Source: string(source), Status: healthDisabled}
	if !enabled {
		return health
	}

	start := time.Now()
	count, latest, err := fetch(ctx)
	health.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		health.Status = healthDown
		health.Error = "source unavailable"
		s.logger.WarnContext(ctx, "Source check failed", logger.StringField("source", string(source)), logger.ErrorField(err))
		return health
	}

	health.Status = healthOK
	health.RecordCount = count
	if !latest.IsZero() {
		health.DataAgeHrs = math.Round(s.now().Sub(latest).Hours()*10) / 10
		if health.DataAgeHrs > s.cfg.Intelligence.StaleAfterHours {
			health.Stale = true
			health.Status = healthStale
		}
	}
	return health
}

func (s *intelligenceService) discover(ctx context.Context) []dto.DiscoveredSource {
	found := []dto.DiscoveredSource{}
	seen := map[string]struct{}{}
	limit := s.cfg.Intelligence.DiscoveryLimit
	for _, feedURL := range s.cfg.Intelligence.DiscoveryFeeds {
		items, err := s.discoveryFeed.FetchItems(ctx, feedURL)
		if err != nil {
			continue
		}
		for _, item := range items {
			if !isSourceAnnouncement(item.Title) {
				continue
			}
			key := item.Link
			if key == "" {
				key = item.Title
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			found = append(found, item)
			if limit > 0 && len(found) >= limit {
				return found
			}
		}
	}
	return found
}

func isSourceAnnouncement(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "api") && (strings.Contains(t, "free") || strings.Contains(t, "insider"))
}

// RankTraders scores members with disclosures after since. A member needs MinTrades to be
// considered and more than QualifyTrades with volume above QualifyVolume to qualify.
func RankTraders(trades []dto.CongressTrade, since time.Time, cfg config.Intelligence) []dto.RankedTrader {
	byMember := map[string]*dto.RankedTrader{}
	for _, trade := range trades {
		name := strings.TrimSpace(trade.Representative)
		if name == "" {
			continue
		}
		date, ok := strategy.ParseDisclosureDate(trade.TransactionDate)
		if !ok || !date.After(since) {
			continue
		}
		r, ok := byMember[name]
		if !ok {
			r = &dto.RankedTrader{Name: name}
			byMember[name] = r
		}
		r.Trades++
		r.Volume += market.ParseAmount(trade.Amount)
		if action, ok := strategy.ClassifyTransactionType(trade.Type); ok {
			if action == dto.ActionBuy {
				r.Buys++
			} else {
				r.Sells++
			}
		}
	}

	ranked := []dto.RankedTrader{}
	for _, r := range byMember {
		if r.Trades < cfg.MinTrades {
			continue
		}
		if r.Volume <= cfg.QualifyVolume || r.Trades <= cfg.QualifyTrades {
			continue
		}
		r.Score = float64(r.Buys) / math.Max(float64(r.Sells), 1) * math.Log(r.Volume)
		ranked = append(ranked, *r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})
	if cfg.TopN > 0 && len(ranked) > cfg.TopN {
		ranked = ranked[:cfg.TopN]
	}
	return ranked
}

func latestCongressDate(trades []dto.CongressTrade) time.Time {
	var latest time.Time
	for _, t := range trades {
		if d, ok := strategy.ParseDisclosureDate(t.TransactionDate); ok && d.After(latest) {
			latest = d
		}
	}
	return latest
}

func latestFilingDate(txs []dto.InsiderTransaction) time.Time {
	var latest time.Time
	for _, tx := range txs {
		if d, err := time.Parse(time.RFC3339, tx.FiledAt); err == nil && d.After(latest) {
			latest = d
		}
	}
	return latest
}

func renderIntelligenceReport(report *dto.IntelligenceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Intelligence refresh %s\n\n", report.GeneratedAt.Format(time.RFC1123))
	b.WriteString("New power traders:\n")
	for _, name := range report.NewTraders {
		fmt.Fprintf(&b, "  * %s\n", name)
	}
	b.WriteString("\nRanking:\n")
	for i, r := range report.PowerTraders {
		fmt.Fprintf(&b, "  %2d. %s  trades=%d buys=%d sells=%d volume=$%.1fM score=%.2f\n",
			i+1, r.Name, r.Trades, r.Buys, r.Sells, r.Volume/1e6, r.Score)
	}
	b.WriteString("\nSource health:\n")
	for _, h := range report.SourceHealth {
		fmt.Fprintf(&b, "  %s: %s (%dms, %d records, %.1fh old)\n", h.Source, h.Status, h.LatencyMs, h.RecordCount, h.DataAgeHrs)
	}
	if len(report.Discoveries) > 0 {
		b.WriteString("\nPossible new sources:\n")
		for _, d := range report.Discoveries {
			fmt.Fprintf(&b, "  %s %s\n", d.Title, d.Link)
		}
	}
	return b.String()
}
