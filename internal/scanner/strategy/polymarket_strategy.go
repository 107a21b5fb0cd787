package strategy

import (
	"context"
	"fmt"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"
)

// PolymarketStrategy turns high-volume prediction markets into secondary candidates.
type PolymarketStrategy struct {
	cfg      *config.Config
	logger   *logger.Logger
	feed     repository.PolymarketFeedRepository
	seenRepo repository.SeenSignalRepository
}

// NewPolymarketStrategy creates a new instance of PolymarketStrategy.
func NewPolymarketStrategy(cfg *config.Config, log *logger.Logger, feed repository.PolymarketFeedRepository, seenRepo repository.SeenSignalRepository) *PolymarketStrategy {
	return &PolymarketStrategy{
		cfg:      cfg,
		logger:   log,
		feed:     feed,
		seenRepo: seenRepo,
	}
}

func (s *PolymarketStrategy) GetSource() dto.SignalSource {
	return dto.SourcePolymarket
}

func (s *PolymarketStrategy) Execute(ctx context.Context) (Result, error) {
	if !s.cfg.Sources.Polymarket.Enabled {
		return disabled(dto.SourcePolymarket), nil
	}

	markets, err := s.feed.FetchMarkets(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Polymarket feed unavailable", logger.ErrorField(err))
		return fetchFailed(dto.SourcePolymarket, err), nil
	}

	candidates, err := s.Evaluate(ctx, markets)
	if err != nil {
		return Result{}, err
	}
	return succeeded(dto.SourcePolymarket, len(markets), candidates), nil
}

// Evaluate emits one secondary candidate per referenced ticker of each qualifying market.
func (s *PolymarketStrategy) Evaluate(ctx context.Context, markets []dto.PredictionMarket) ([]dto.Candidate, error) {
	policy := s.cfg.Sources.Polymarket

	var candidates []dto.Candidate
	for _, m := range markets {
		title := m.DisplayTitle()
		volume := float64(m.Volume)
		if title == "" || volume < policy.MinVolume {
			continue
		}

		action, ok := classifyMarketTitle(title)
		if !ok {
			continue
		}

		for _, ticker := range referencedTickers(title) {
			signalID := MarketIdentity(m, ticker)
			seen, err := s.seenRepo.HasBeenSeen(ctx, signalID)
			if err != nil {
				return nil, fmt.Errorf("check seen signal: %w", err)
			}
			if seen {
				continue
			}
			if err := s.seenRepo.MarkSeen(ctx, signalID, string(dto.SourcePolymarket)); err != nil {
				return nil, fmt.Errorf("mark seen signal: %w", err)
			}

			candidates = append(candidates, dto.Candidate{
				Source:     dto.SourcePolymarket,
				Ticker:     ticker,
				Action:     action,
				Confidence: policy.Confidence,
				Amount:     volume,
				IsPrimary:  false,
			})
		}
	}

	s.logger.InfoContext(ctx, "Polymarket scan evaluated",
		logger.IntField("records", len(markets)),
		logger.IntField("candidates", len(candidates)))
	return candidates, nil
}
