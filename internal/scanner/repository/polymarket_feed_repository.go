package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"
)

// PolymarketFeedRepository fetches active prediction market listings.
type PolymarketFeedRepository interface {
	FetchMarkets(ctx context.Context) ([]dto.PredictionMarket, error)
}

type polymarketFeedRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *feedClient
}

func NewPolymarketFeedRepository(cfg *config.Config, log *logger.Logger) PolymarketFeedRepository {
	return &polymarketFeedRepository{
		cfg:    cfg,
		log:    log,
		client: newFeedClient(string(dto.SourcePolymarket), cfg.Sources.RequestTimeout, cfg.Sources.Polymarket.MaxRequestPerMinute, log),
	}
}

func (r *polymarketFeedRepository) FetchMarkets(ctx context.Context) ([]dto.PredictionMarket, error) {
	body, err := r.client.sendRequest(ctx, http.MethodGet, r.cfg.Sources.Polymarket.URL, nil, nil)
	if err != nil {
		return nil, err
	}

	var markets []dto.PredictionMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("%w: decode polymarket feed: %v", ErrSourceUnavailable, err)
	}

	r.log.DebugContext(ctx, "Polymarket feed fetched", logger.IntField("records", len(markets)))
	return markets, nil
}
