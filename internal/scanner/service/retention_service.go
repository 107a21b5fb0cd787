package service

import (
	"context"
	"fmt"
	"time"

	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"
)

// RetentionReport counts rows removed by one purge.
type RetentionReport struct {
	SeenSignals int64 `json:"seen_signals"`
	SentAlerts  int64 `json:"sent_alerts"`
	ScanRuns    int64 `json:"scan_runs"`
}

// RetentionService prunes the dedup stores and scan history.
type RetentionService interface {
	Purge(ctx context.Context) (RetentionReport, error)
}

// NewRetentionService creates a new RetentionService. Scan runs share the sent-alert window.
func NewRetentionService(
	seenRepo repository.SeenSignalRepository,
	sentRepo repository.SentAlertRepository,
	runRepo repository.ScanRunRepository,
	log *logger.Logger,
	seenDays, sentDays int,
) RetentionService {
	return &retentionService{
		seenRepo: seenRepo,
		sentRepo: sentRepo,
		runRepo:  runRepo,
		logger:   log,
		seenDays: seenDays,
		sentDays: sentDays,
		now:      time.Now,
	}
}

type retentionService struct {
	seenRepo repository.SeenSignalRepository
	sentRepo repository.SentAlertRepository
	runRepo  repository.ScanRunRepository
	logger   *logger.Logger
	seenDays int
	sentDays int
	now      func() time.Time
}

func (s *retentionService) Purge(ctx context.Context) (RetentionReport, error) {
	var report RetentionReport
	now := s.now()

	n, err := s.seenRepo.DeleteBefore(ctx, now.AddDate(0, 0, -s.seenDays))
	if err != nil {
		return report, fmt.Errorf("purge seen signals: %w", err)
	}
	report.SeenSignals = n

	sentCutoff := now.AddDate(0, 0, -s.sentDays)
	if report.SentAlerts, err = s.sentRepo.DeleteBefore(ctx, sentCutoff); err != nil {
		return report, fmt.Errorf("purge sent alerts: %w", err)
	}
	if report.ScanRuns, err = s.runRepo.DeleteBefore(ctx, sentCutoff); err != nil {
		return report, fmt.Errorf("purge scan runs: %w", err)
	}

	s.logger.InfoContext(ctx, "Retention purge completed",
		logger.Int64Field("seen_signals", report.SeenSignals),
		logger.Int64Field("sent_alerts", report.SentAlerts),
		logger.Int64Field("scan_runs", report.ScanRuns))
	return report, nil
}
