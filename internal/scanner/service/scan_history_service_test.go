package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanHistoryService_GetScanRun(t *testing.T) {
	runs := newFakeScanRunRepo()
	started := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	summary, _ := json.Marshal(dto.ScanResult{Status: dto.ScanSuccess, RunID: "run-1", SignalCount: 4})
	require.NoError(t, runs.Create(context.Background(), &entity.ScanRun{
		RunID:       "run-1",
		Trigger:     "cron",
		Status:      entity.ScanStatusSuccess,
		SignalCount: 4,
		StartedAt:   started,
		CompletedAt: sql.NullTime{Time: started.Add(1500 * time.Millisecond), Valid: true},
		Summary:     summary,
	}))
	svc := NewScanHistoryService(runs, &fakeScanStatus{}, logger.NewNop())

	resp, err := svc.GetScanRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), resp.Duration)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 4, resp.Summary.SignalCount)

	_, err = svc.GetScanRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrScanRunNotFound)
}

func TestScanHistoryService_ListScanRunsNewestFirst(t *testing.T) {
	runs := newFakeScanRunRepo()
	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, runs.Create(context.Background(), &entity.ScanRun{RunID: id, Status: entity.ScanStatusSuccess, StartedAt: base.Add(time.Duration(i) * time.Hour)}))
	}
	svc := NewScanHistoryService(runs, &fakeScanStatus{}, logger.NewNop())

	list, err := svc.ListScanRuns(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].RunID)
	assert.Equal(t, "b", list[1].RunID)
}

func TestScanHistoryService_LastScanFallsBackToDatabase(t *testing.T) {
	runs := newFakeScanRunRepo()
	status := &fakeScanStatus{}
	svc := NewScanHistoryService(runs, status, logger.NewNop())

	last, err := svc.LastScan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)

	started := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, runs.Create(context.Background(), &entity.ScanRun{
		RunID: "db-run", Status: entity.ScanStatusError, StartedAt: started,
		CompletedAt: sql.NullTime{Time: started.Add(time.Second), Valid: true},
	}))
	last, err = svc.LastScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "db-run", last.RunID)
	assert.Equal(t, int64(1000), last.DurationMs)

	require.NoError(t, status.SaveLast(context.Background(), dto.LastScan{RunID: "cached"}, time.Hour))
	last, err = svc.LastScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", last.RunID)
}
