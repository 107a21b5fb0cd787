package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"
)

// CongressFeedRepository fetches House disclosure records.
type CongressFeedRepository interface {
	FetchTrades(ctx context.Context) ([]dto.CongressTrade, error)
}

type congressFeedRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *feedClient
}

func NewCongressFeedRepository(cfg *config.Config, log *logger.Logger) CongressFeedRepository {
	return &congressFeedRepository{
		cfg:    cfg,
		log:    log,
		client: newFeedClient(string(dto.SourceCongress), cfg.Sources.RequestTimeout, cfg.Sources.Congress.MaxRequestPerMinute, log),
	}
}

func (r *congressFeedRepository) FetchTrades(ctx context.Context) ([]dto.CongressTrade, error) {
	body, err := r.client.sendRequest(ctx, http.MethodGet, r.cfg.Sources.Congress.URL, nil, nil)
	if err != nil {
		return nil, err
	}

	// The bucket answers with an XML error document when the object is unavailable.
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("<")) {
		r.log.WarnContext(ctx, "Congress feed returned a non-JSON document")
		return nil, fmt.Errorf("%w: congress feed returned XML", ErrSourceUnavailable)
	}

	var trades []dto.CongressTrade
	if err := json.Unmarshal(body, &trades); err != nil {
		return nil, fmt.Errorf("%w: decode congress feed: %v", ErrSourceUnavailable, err)
	}

	r.log.DebugContext(ctx, "Congress feed fetched", logger.IntField("records", len(trades)))
	return trades, nil
}
