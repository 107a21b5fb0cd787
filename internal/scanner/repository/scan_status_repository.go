package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang-insider-scanner/internal/scanner/dto"

	"github.com/redis/go-redis/v9"
)

// ScanStatusRepository caches the last scan summary for the status page.
type ScanStatusRepository interface {
	SaveLast(ctx context.Context, last dto.LastScan, ttl time.Duration) error
	// GetLast returns nil when no scan has been recorded.
	GetLast(ctx context.Context) (*dto.LastScan, error)
}

// NewScanStatusRepository creates a Redis-backed scan status store under key.
func NewScanStatusRepository(client *redis.Client, key string) ScanStatusRepository {
	return &scanStatusRepository{client: client, key: key}
}

type scanStatusRepository struct {
	client *redis.Client
	key    string
}

func (r *scanStatusRepository) SaveLast(ctx context.Context, last dto.LastScan, ttl time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, r.key, map[string]interface{}{
		"run_id":       last.RunID,
		"status":       last.Status,
		"signal_count": last.SignalCount,
		"alert_count":  last.AlertCount,
		"sent_count":   last.SentCount,
		"duration_ms":  last.DurationMs,
		"finished_at":  last.FinishedAt.Unix(),
	})
	pipe.Expire(ctx, r.key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *scanStatusRepository) GetLast(ctx context.Context) (*dto.LastScan, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(values) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	atoi := func(k string) int {
		v, _ := strconv.Atoi(values[k])
		return v
	}
	durationMs, _ := strconv.ParseInt(values["duration_ms"], 10, 64)
	finishedAt, _ := strconv.ParseInt(values["finished_at"], 10, 64)

	return &dto.LastScan{
		RunID:       values["run_id"],
		Status:      values["status"],
		SignalCount: atoi("signal_count"),
		AlertCount:  atoi("alert_count"),
		SentCount:   atoi("sent_count"),
		DurationMs:  durationMs,
		FinishedAt:  time.Unix(finishedAt, 0),
	}, nil
}
