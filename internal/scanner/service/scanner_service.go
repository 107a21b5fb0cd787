package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/internal/scanner/strategy"
	"golang-insider-scanner/pkg/common"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrScanInProgress is reported when a trigger arrives while another scan is running.
var ErrScanInProgress = errors.New("scan already in progress")

const (
	lockMargin  = 30 * time.Second
	lastScanTTL = 7 * 24 * time.Hour
)

// ScannerService runs the end-to-end scan.
type ScannerService interface {
	RunScan(ctx context.Context, trigger string) dto.ScanResult
	IsScanning() bool
}

type scannerService struct {
	strategies []strategy.SourceStrategy
	gate       *AlertGate
	policy     AggregationPolicy
	runRepo    repository.ScanRunRepository
	lockRepo   repository.ScanLockRepository
	statusRepo repository.ScanStatusRepository
	metrics    *metrics.Recorder
	logger     *logger.Logger
	timeout    time.Duration
	running    atomic.Bool
	now        func() time.Time
}

// NewScannerService creates a new ScannerService.
func NewScannerService(
	strategies []strategy.SourceStrategy,
	gate *AlertGate,
	policy AggregationPolicy,
	runRepo repository.ScanRunRepository,
	lockRepo repository.ScanLockRepository,
	statusRepo repository.ScanStatusRepository,
	recorder *metrics.Recorder,
	log *logger.Logger,
	timeout time.Duration,
) ScannerService {
	return &scannerService{
		strategies: strategies,
		gate:       gate,
		policy:     policy,
		runRepo:    runRepo,
		lockRepo:   lockRepo,
		statusRepo: statusRepo,
		metrics:    recorder,
		logger:     log,
		timeout:    timeout,
		now:        time.Now,
	}
}

// IsScanning reports whether this process is running a scan.
func (s *scannerService) IsScanning() bool {
	return s.running.Load()
}

// RunScan executes one scan. Overlapping calls return a skipped result immediately.
func (s *scannerService) RunScan(ctx context.Context, trigger string) dto.ScanResult {
	if !s.running.CompareAndSwap(false, true) {
		return s.skipped(ctx, trigger)
	}
	defer s.running.Store(false)

	runID := uuid.NewString()
	acquired, err := s.lockRepo.Acquire(ctx, runID, s.timeout+lockMargin)
	if err != nil {
		// The sent-alert transaction lock still prevents double sends.
		s.logger.WarnContext(ctx, "Failed to acquire distributed scan lock, continuing with process guard", logger.ErrorField(err))
	} else if !acquired {
		return s.skipped(ctx, trigger)
	} else {
		defer func() {
			if err := s.lockRepo.Release(context.Background(), runID); err != nil {
				s.logger.Warn("Failed to release scan lock", logger.ErrorField(err), logger.StringField("run_id", runID))
			}
		}()
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := dto.ScanResult{
		Status:    dto.ScanSuccess,
		RunID:     runID,
		Trigger:   trigger,
		Alerts:    []dto.AlertResult{},
		StartedAt: s.now(),
	}
	s.logger.InfoContext(scanCtx, "Scan started", logger.StringField("run_id", runID), logger.StringField("trigger", trigger))

	run := &entity.ScanRun{
		RunID:     runID,
		Trigger:   trigger,
		Status:    entity.ScanStatusRunning,
		StartedAt: result.StartedAt,
	}
	if err := s.runRepo.Create(scanCtx, run); err != nil {
		return s.finish(scanCtx, nil, result, fmt.Errorf("create scan run: %w", err))
	}

	if err := s.scan(scanCtx, &result); err != nil {
		return s.finish(scanCtx, run, result, err)
	}
	return s.finish(scanCtx, run, result, nil)
}

func (s *scannerService) scan(ctx context.Context, result *dto.ScanResult) error {
	results := make([]strategy.Result, len(s.strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range s.strategies {
		i, st := i, st
		g.Go(func() error {
			res, err := st.Execute(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", st.GetSource(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var candidates []dto.Candidate
	for _, res := range results {
		candidates = append(candidates, res.Candidates...)
		result.Sources = append(result.Sources, res.Report)
		if s.metrics != nil {
			s.metrics.RecordCandidates(res.Report.Source, len(res.Candidates))
			if res.Report.Status == common.StatusFailed {
				s.metrics.RecordSourceError(res.Report.Source)
			}
		}
	}
	result.SignalCount = len(candidates)

	alerts := Aggregate(candidates, s.policy)
	s.logger.InfoContext(ctx, "Signals aggregated",
		logger.IntField("signal_count", len(candidates)),
		logger.IntField("alert_count", len(alerts)))

	outcomes, err := s.gate.Process(ctx, alerts)
	result.Alerts = append(result.Alerts, outcomes...)
	return err
}

func (s *scannerService) skipped(ctx context.Context, trigger string) dto.ScanResult {
	s.logger.InfoContext(ctx, "Scan skipped, another scan is running", logger.StringField("trigger", trigger))
	if s.metrics != nil {
		s.metrics.RecordScan(string(dto.ScanSkipped), 0)
	}
	return dto.ScanResult{
		Status:    dto.ScanSkipped,
		Trigger:   trigger,
		Alerts:    []dto.AlertResult{},
		StartedAt: s.now(),
		Error:     ErrScanInProgress.Error(),
	}
}

func (s *scannerService) finish(ctx context.Context, run *entity.ScanRun, result dto.ScanResult, scanErr error) dto.ScanResult {
	finishedAt := s.now()
	result.DurationMs = finishedAt.Sub(result.StartedAt).Milliseconds()
	if scanErr != nil {
		result.Status = dto.ScanError
		result.Error = scanErr.Error()
		s.logger.ErrorContext(ctx, "Scan failed", logger.ErrorField(scanErr), logger.StringField("run_id", result.RunID))
	} else {
		s.logger.InfoContext(ctx, "Scan completed",
			logger.StringField("run_id", result.RunID),
			logger.IntField("signal_count", result.SignalCount),
			logger.IntField("alert_count", len(result.Alerts)),
			logger.IntField("sent_count", result.SentCount()),
			logger.Int64Field("duration_ms", result.DurationMs))
	}

	if s.metrics != nil {
		s.metrics.RecordScan(string(result.Status), float64(result.DurationMs)/1000)
		for _, a := range result.Alerts {
			s.metrics.RecordAlert(string(a.Outcome))
		}
	}

	// Bookkeeping outlives the scan deadline.
	bg := context.WithoutCancel(ctx)
	if run != nil {
		s.completeRun(bg, run, result, finishedAt)
	}
	last := dto.LastScan{
		RunID:       result.RunID,
		Status:      string(result.Status),
		SignalCount: result.SignalCount,
		AlertCount:  len(result.Alerts),
		SentCount:   result.SentCount(),
		DurationMs:  result.DurationMs,
		FinishedAt:  finishedAt,
	}
	if err := s.statusRepo.SaveLast(bg, last, lastScanTTL); err != nil {
		s.logger.Warn("Failed to cache last scan", logger.ErrorField(err))
	}
	return result
}

func (s *scannerService) completeRun(ctx context.Context, run *entity.ScanRun, result dto.ScanResult, finishedAt time.Time) {
	run.Status = entity.ScanStatusSuccess
	if result.Status == dto.ScanError {
		run.Status = entity.ScanStatusError
		run.ErrorMessage = sql.NullString{String: result.Error, Valid: true}
	}
	run.SignalCount = result.SignalCount
	run.AlertCount = len(result.Alerts)
	run.SentCount = result.SentCount()
	run.CompletedAt = sql.NullTime{Time: finishedAt, Valid: true}
	if summary, err := json.Marshal(result); err == nil {
		run.Summary = summary
	}
	if err := s.runRepo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to update scan run", logger.ErrorField(err), logger.StringField("run_id", run.RunID))
	}
}
