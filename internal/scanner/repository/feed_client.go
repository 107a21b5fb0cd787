package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-insider-scanner/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrSourceUnavailable marks a feed that could not be fetched or decoded.
var ErrSourceUnavailable = errors.New("source unavailable")

const maxFeedBodyBytes = 64 << 20

type feedClient struct {
	name                string
	log                 *logger.Logger
	httpClient          *http.Client
	requestLimiter      *rate.Limiter
	maxRequestPerMinute int
}

func newFeedClient(name string, timeout time.Duration, maxRequestPerMinute int, log *logger.Logger) *feedClient {
	if maxRequestPerMinute <= 0 {
		maxRequestPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)
	return &feedClient{
		name: name,
		log:  log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter:      rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		maxRequestPerMinute: maxRequestPerMinute,
	}
}

func (c *feedClient) sendRequest(ctx context.Context, method string, url string, body []byte, headers map[string]string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("source", c.name),
		zap.String("url", url),
		zap.Int("max_request_per_minute", c.maxRequestPerMinute),
	}

	if err := c.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, c.name, err)
	}

	var payload io.Reader
	if len(body) > 0 {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "insider-scanner/1.0")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to send feed request", fields...)
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		c.log.ErrorContext(ctx, "Received non-OK response from feed", fields...)
		return nil, fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, c.name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodyBytes))
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to read feed response body", fields...)
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, c.name, err)
	}

	return data, nil
}
