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

// SECFeedRepository fetches recent Form 4 insider transactions.
type SECFeedRepository interface {
	FetchTransactions(ctx context.Context, lookbackDays int) ([]dto.InsiderTransaction, error)
}

type secFeedRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *feedClient
}

func NewSECFeedRepository(cfg *config.Config, log *logger.Logger) SECFeedRepository {
	return &secFeedRepository{
		cfg:    cfg,
		log:    log,
		client: newFeedClient(string(dto.SourceSECForm4), cfg.Sources.RequestTimeout, cfg.Sources.SEC.MaxRequestPerMinute, log),
	}
}

func (r *secFeedRepository) FetchTransactions(ctx context.Context, lookbackDays int) ([]dto.InsiderTransaction, error) {
	if r.cfg.Sources.SEC.APIKey == "" {
		return nil, fmt.Errorf("%w: sec api key not configured", ErrSourceUnavailable)
	}

	query := dto.InsiderTradingQuery{
		Query: fmt.Sprintf("transactionDate:[now-%dd TO now] AND transactionShares:[%d TO *]", lookbackDays, r.cfg.Sources.SEC.QueryMinShares),
		From:  0,
		Size:  r.cfg.Sources.SEC.PageSize,
		Sort:  []map[string]dto.SortDir{{"filedAt": {Order: "desc"}}},
	}
	payload, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	body, err := r.client.sendRequest(ctx, http.MethodPost, r.cfg.Sources.SEC.URL, payload, map[string]string{
		"Authorization": r.cfg.Sources.SEC.APIKey,
	})
	if err != nil {
		return nil, err
	}

	var response dto.InsiderTradingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode sec feed: %v", ErrSourceUnavailable, err)
	}

	r.log.DebugContext(ctx, "SEC feed fetched", logger.IntField("records", len(response.Transactions)))
	return response.Transactions, nil
}
