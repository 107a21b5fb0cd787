package service

import (
	"context"
	"encoding/json"
	"errors"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"

	"gorm.io/gorm"
)

// ErrScanRunNotFound is returned for unknown run ids.
var ErrScanRunNotFound = errors.New("scan run not found")

// ScanHistoryService defines the interface for reading past scans.
type ScanHistoryService interface {
	GetScanRun(ctx context.Context, runID string) (*dto.ScanRunResponse, error)
	ListScanRuns(ctx context.Context, limit int) ([]*dto.ScanRunResponse, error)
	LastScan(ctx context.Context) (*dto.LastScan, error)
}

// NewScanHistoryService creates a new scan history service.
func NewScanHistoryService(runRepo repository.ScanRunRepository, statusRepo repository.ScanStatusRepository, log *logger.Logger) ScanHistoryService {
	return &scanHistoryService{
		runRepo:    runRepo,
		statusRepo: statusRepo,
		logger:     log,
	}
}

type scanHistoryService struct {
	runRepo    repository.ScanRunRepository
	statusRepo repository.ScanStatusRepository
	logger     *logger.Logger
}

// GetScanRun retrieves a scan run with its full summary.
func (s *scanHistoryService) GetScanRun(ctx context.Context, runID string) (*dto.ScanRunResponse, error) {
	run, err := s.runRepo.FindByRunID(ctx, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScanRunNotFound
		}
		s.logger.Error("Failed to find scan run", logger.ErrorField(err), logger.StringField("run_id", runID))
		return nil, err
	}
	resp := s.mapToScanRunResponse(run)
	if len(run.Summary) > 0 {
		var summary dto.ScanResult
		if err := json.Unmarshal(run.Summary, &summary); err == nil {
			resp.Summary = &summary
		}
	}
	return resp, nil
}

// ListScanRuns retrieves the most recent scan runs without their summaries.
func (s *scanHistoryService) ListScanRuns(ctx context.Context, limit int) ([]*dto.ScanRunResponse, error) {
	runs, err := s.runRepo.FindRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list scan runs", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.ScanRunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, s.mapToScanRunResponse(&runs[i]))
	}
	return responses, nil
}

// LastScan reads the cached summary, falling back to the newest persisted run.
func (s *scanHistoryService) LastScan(ctx context.Context) (*dto.LastScan, error) {
	last, err := s.statusRepo.GetLast(ctx)
	if err != nil {
		s.logger.Warn("Failed to read cached last scan", logger.ErrorField(err))
	}
	if last != nil {
		return last, nil
	}

	runs, err := s.runRepo.FindRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	run := runs[0]
	last = &dto.LastScan{
		RunID:       run.RunID,
		Status:      string(run.Status),
		SignalCount: run.SignalCount,
		AlertCount:  run.AlertCount,
		SentCount:   run.SentCount,
	}
	if run.CompletedAt.Valid {
		last.FinishedAt = run.CompletedAt.Time
		last.DurationMs = run.CompletedAt.Time.Sub(run.StartedAt).Milliseconds()
	}
	return last, nil
}

func (s *scanHistoryService) mapToScanRunResponse(run *entity.ScanRun) *dto.ScanRunResponse {
	var duration int64
	if run.CompletedAt.Valid {
		duration = run.CompletedAt.Time.Sub(run.StartedAt).Milliseconds()
	}

	return &dto.ScanRunResponse{
		ID:          run.ID,
		RunID:       run.RunID,
		Trigger:     run.Trigger,
		Status:      string(run.Status),
		SignalCount: run.SignalCount,
		AlertCount:  run.AlertCount,
		SentCount:   run.SentCount,
		StartedAt:   run.StartedAt,
		Duration:    duration,
		Error:       run.ErrorMessage.String,
	}
}
