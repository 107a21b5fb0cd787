package strategy

import (
	"context"
	"fmt"
	"sort"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/market"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"
)

// SECStrategy turns Form 4 filings into primary candidates and detects insider buying clusters.
type SECStrategy struct {
	cfg      *config.Config
	logger   *logger.Logger
	feed     repository.SECFeedRepository
	seenRepo repository.SeenSignalRepository
}

// NewSECStrategy creates a new instance of SECStrategy.
func NewSECStrategy(cfg *config.Config, log *logger.Logger, feed repository.SECFeedRepository, seenRepo repository.SeenSignalRepository) *SECStrategy {
	return &SECStrategy{
		cfg:      cfg,
		logger:   log,
		feed:     feed,
		seenRepo: seenRepo,
	}
}

func (s *SECStrategy) GetSource() dto.SignalSource {
	return dto.SourceSECForm4
}

func (s *SECStrategy) Execute(ctx context.Context) (Result, error) {
	if !s.cfg.Sources.SEC.Enabled {
		return disabled(dto.SourceSECForm4), nil
	}

	transactions, err := s.feed.FetchTransactions(ctx, s.cfg.Scanner.LookbackDays)
	if err != nil {
		s.logger.WarnContext(ctx, "SEC feed unavailable", logger.ErrorField(err))
		return fetchFailed(dto.SourceSECForm4, err), nil
	}

	candidates, err := s.Evaluate(ctx, transactions)
	if err != nil {
		return Result{}, err
	}
	return succeeded(dto.SourceSECForm4, len(transactions), candidates), nil
}

// Evaluate emits one candidate per qualifying filing plus one cluster candidate per ticker
// with enough qualifying purchases in this batch.
func (s *SECStrategy) Evaluate(ctx context.Context, transactions []dto.InsiderTransaction) ([]dto.Candidate, error) {
	policy := s.cfg.Sources.SEC

	var (
		candidates []dto.Candidate
		purchases  = map[string][]dto.InsiderTransaction{}
	)
	for _, t := range transactions {
		signalID := FilingIdentity(t)
		seen, err := s.seenRepo.HasBeenSeen(ctx, signalID)
		if err != nil {
			return nil, fmt.Errorf("check seen signal: %w", err)
		}
		if seen {
			continue
		}

		ticker, ok := market.NormalizeTicker(t.Issuer.TradingSymbol)
		if !ok {
			continue
		}

		action, ok := filingCodes[t.TransactionCode]
		if !ok {
			continue
		}

		if t.TransactionShares == 0 || t.TransactionPricePerShare == 0 {
			continue
		}
		value := t.Value()
		if value < policy.MinValue {
			continue
		}

		rel := t.ReportingOwner.Relationship
		isCLevel := rel.IsOfficer && cLevelTitle.MatchString(rel.OfficerTitle)

		if err := s.seenRepo.MarkSeen(ctx, signalID, string(dto.SourceSECForm4)); err != nil {
			return nil, fmt.Errorf("mark seen signal: %w", err)
		}

		confidence := policy.BaseConfidence
		if isCLevel {
			confidence = policy.OfficerConfidence
		}
		candidates = append(candidates, dto.Candidate{
			Source:     dto.SourceSECForm4,
			Ticker:     ticker,
			Action:     action,
			Confidence: confidence,
			Amount:     value,
			Trader:     t.ReportingOwner.Name,
			IsPrimary:  true,
		})

		if action == dto.ActionBuy {
			purchases[ticker] = append(purchases[ticker], t)
		}
	}

	candidates = append(candidates, s.detectClusters(purchases)...)

	s.logger.InfoContext(ctx, "SEC scan evaluated",
		logger.IntField("records", len(transactions)),
		logger.IntField("candidates", len(candidates)))
	return candidates, nil
}

func (s *SECStrategy) detectClusters(purchases map[string][]dto.InsiderTransaction) []dto.Candidate {
	tickers := make([]string, 0, len(purchases))
	for ticker := range purchases {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	var clusters []dto.Candidate
	for _, ticker := range tickers {
		records := purchases[ticker]
		if len(records) < s.cfg.Sources.SEC.ClusterMinSize {
			continue
		}
		var total float64
		for _, r := range records {
			total += r.Value()
		}
		clusters = append(clusters, dto.Candidate{
			Source:      dto.SourceInsiderCluster,
			Ticker:      ticker,
			Action:      dto.ActionBuy,
			Confidence:  s.cfg.Sources.SEC.ClusterConfidence,
			Amount:      total,
			IsCluster:   true,
			ClusterSize: len(records),
			IsPrimary:   true,
		})
	}
	return clusters
}
