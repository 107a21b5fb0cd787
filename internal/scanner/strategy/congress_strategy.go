package strategy

import (
	"context"
	"fmt"
	"time"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/market"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"
)

var disclosureDateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// CongressStrategy turns House disclosures into primary candidates.
type CongressStrategy struct {
	cfg      *config.Config
	logger   *logger.Logger
	feed     repository.CongressFeedRepository
	seenRepo repository.SeenSignalRepository
	registry *PowerTraderRegistry
	now      func() time.Time
}

// NewCongressStrategy creates a new instance of CongressStrategy.
func NewCongressStrategy(cfg *config.Config, log *logger.Logger, feed repository.CongressFeedRepository, seenRepo repository.SeenSignalRepository, registry *PowerTraderRegistry) *CongressStrategy {
	return &CongressStrategy{
		cfg:      cfg,
		logger:   log,
		feed:     feed,
		seenRepo: seenRepo,
		registry: registry,
		now:      time.Now,
	}
}

func (s *CongressStrategy) GetSource() dto.SignalSource {
	return dto.SourceCongress
}

func (s *CongressStrategy) Execute(ctx context.Context) (Result, error) {
	if !s.cfg.Sources.Congress.Enabled {
		return disabled(dto.SourceCongress), nil
	}

	trades, err := s.feed.FetchTrades(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Congress feed unavailable", logger.ErrorField(err))
		return fetchFailed(dto.SourceCongress, err), nil
	}

	candidates, err := s.Evaluate(ctx, trades)
	if err != nil {
		return Result{}, err
	}
	return succeeded(dto.SourceCongress, len(trades), candidates), nil
}

// Evaluate filters disclosures and marks each accepted record seen as soon as it is accepted.
func (s *CongressStrategy) Evaluate(ctx context.Context, trades []dto.CongressTrade) ([]dto.Candidate, error) {
	policy := s.cfg.Sources.Congress
	cutoff := s.now().AddDate(0, 0, -s.cfg.Scanner.LookbackDays)

	powerTraders, err := s.registry.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("load power traders: %w", err)
	}

	var candidates []dto.Candidate
	for _, trade := range trades {
		txDate, ok := ParseDisclosureDate(trade.TransactionDate)
		if !ok || !txDate.After(cutoff) {
			continue
		}

		signalID := CongressIdentity(trade)
		seen, err := s.seenRepo.HasBeenSeen(ctx, signalID)
		if err != nil {
			return nil, fmt.Errorf("check seen signal: %w", err)
		}
		if seen {
			continue
		}

		ticker, ok := market.NormalizeTicker(trade.Ticker)
		if !ok {
			s.logger.DebugContext(ctx, "Skipping disclosure with unknown ticker", logger.StringField("ticker", trade.Ticker))
			continue
		}

		amount := market.ParseAmount(trade.Amount)
		if amount < policy.MinAmount {
			continue
		}

		action, ok := ClassifyTransactionType(trade.Type)
		if !ok {
			s.logger.DebugContext(ctx, "Skipping disclosure with unknown type", logger.StringField("type", trade.Type))
			continue
		}

		isPower := matchPowerTrader(trade.Representative, powerTraders)

		if err := s.seenRepo.MarkSeen(ctx, signalID, string(dto.SourceCongress)); err != nil {
			return nil, fmt.Errorf("mark seen signal: %w", err)
		}

		confidence := policy.BaseConfidence
		if isPower {
			confidence = policy.PowerConfidence
		}
		candidates = append(candidates, dto.Candidate{
			Source:        dto.SourceCongress,
			Ticker:        ticker,
			Action:        action,
			Confidence:    confidence,
			Amount:        amount,
			Trader:        trade.Representative,
			IsPowerTrader: isPower,
			IsPrimary:     true,
		})
	}

	s.logger.InfoContext(ctx, "Congress scan evaluated",
		logger.IntField("records", len(trades)),
		logger.IntField("candidates", len(candidates)))
	return candidates, nil
}

// ParseDisclosureDate accepts the date layouts seen in the disclosure feed.
func ParseDisclosureDate(raw string) (time.Time, bool) {
	for _, layout := range disclosureDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
