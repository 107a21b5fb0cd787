package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Sources.RequestTimeout = 2 * time.Second
	cfg.Sources.Congress.URL = url
	cfg.Sources.Congress.MaxRequestPerMinute = 6000
	cfg.Sources.SEC.URL = url
	cfg.Sources.SEC.APIKey = "secret"
	cfg.Sources.SEC.PageSize = 50
	cfg.Sources.SEC.QueryMinShares = 5000
	cfg.Sources.SEC.MaxRequestPerMinute = 6000
	cfg.Sources.Polymarket.URL = url
	cfg.Sources.Polymarket.MaxRequestPerMinute = 6000
	return cfg
}

func TestCongressFeed_FetchTrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"representative":"Hon. Nancy Pelosi","ticker":"NVDA","transaction_date":"2026-10-10","type":"purchase","amount":"$250,001 - $500,000"}]`)
	}))
	defer srv.Close()

	repo := NewCongressFeedRepository(testConfig(srv.URL), logger.NewNop())
	trades, err := repo.FetchTrades(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "NVDA", trades[0].Ticker)
	assert.Equal(t, "$250,001 - $500,000", trades[0].Amount)
}

func TestCongressFeed_XMLIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "  <?xml version=\"1.0\"?><Error><Code>AccessDenied</Code></Error>")
	}))
	defer srv.Close()

	repo := NewCongressFeedRepository(testConfig(srv.URL), logger.NewNop())
	_, err := repo.FetchTrades(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestCongressFeed_Non200IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := NewCongressFeedRepository(testConfig(srv.URL), logger.NewNop())
	_, err := repo.FetchTrades(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSECFeed_SendsQueryAndAuthorization(t *testing.T) {
	var got dto.InsiderTradingQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"transactions":[{"accessionNo":"0001","issuer":{"tradingSymbol":"NVDA"},"reportingOwner":{"name":"Jane Doe","relationship":{"isOfficer":true,"officerTitle":"CEO"}},"transactionCode":"P","transactionShares":"10000","transactionPricePerShare":120.5}]}`)
	}))
	defer srv.Close()

	repo := NewSECFeedRepository(testConfig(srv.URL), logger.NewNop())
	txs, err := repo.FetchTransactions(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "transactionDate:[now-7d TO now] AND transactionShares:[5000 TO *]", got.Query)
	assert.Equal(t, 50, got.Size)
	require.Len(t, txs, 1)
	assert.Equal(t, 10000.0, float64(txs[0].TransactionShares))
	assert.InDelta(t, 1205000.0, txs[0].Value(), 0.001)
	assert.True(t, txs[0].ReportingOwner.Relationship.IsOfficer)
}

func TestSECFeed_MissingAPIKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	cfg.Sources.SEC.APIKey = ""
	_, err := NewSECFeedRepository(cfg, logger.NewNop()).FetchTransactions(context.Background(), 7)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestPolymarketFeed_FetchMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"1","question":"Will Nvidia hit $200?","volume":"250000.5"},{"id":"2","title":"Fed cut","volume":1000}]`)
	}))
	defer srv.Close()

	repo := NewPolymarketFeedRepository(testConfig(srv.URL), logger.NewNop())
	markets, err := repo.FetchMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "Will Nvidia hit $200?", markets[0].DisplayTitle())
	assert.Equal(t, 250000.5, float64(markets[0].Volume))
	assert.Equal(t, 1000.0, float64(markets[1].Volume))
}

func TestPolymarketFeed_ObjectIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":"rate limited"}`)
	}))
	defer srv.Close()

	_, err := NewPolymarketFeedRepository(testConfig(srv.URL), logger.NewNop()).FetchMarkets(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}
