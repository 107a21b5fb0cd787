package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	mu       sync.Mutex
	triggers []string
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeScanner) RunScan(_ context.Context, trigger string) dto.ScanResult {
	f.mu.Lock()
	f.triggers = append(f.triggers, trigger)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return dto.ScanResult{Status: dto.ScanSuccess}
}

func (f *fakeScanner) IsScanning() bool { return false }

func (f *fakeScanner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.triggers)
}

type fakeRetention struct {
	calls int
	err   error
}

func (f *fakeRetention) Purge(context.Context) (service.RetentionReport, error) {
	f.calls++
	return service.RetentionReport{SeenSignals: 3}, f.err
}

type fakeIntelligence struct {
	calls int
}

func (f *fakeIntelligence) Refresh(context.Context) (*dto.IntelligenceReport, error) {
	f.calls++
	return &dto.IntelligenceReport{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Scanner: config.Scanner{
			Schedule:          "*/30 * * * *",
			RetentionSchedule: "15 3 * * *",
			Timeout:           time.Minute,
		},
		Intelligence: config.Intelligence{Enabled: true, Schedule: "@weekly"},
	}
}

func TestRegister_AddsEveryJob(t *testing.T) {
	r := NewRunner(testConfig(), &fakeScanner{}, &fakeRetention{}, &fakeIntelligence{}, logger.NewNop())
	require.NoError(t, r.Register())

	assert.Equal(t, []string{JobScan, JobRetention, JobIntelligence}, r.Jobs())

	r.Start(context.Background())
	defer r.Stop()
	next, ok := r.NextRun(JobScan)
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))
	assert.Contains(t, []int{0, 30}, next.Minute())
}

func TestRegister_SkipsDisabledIntelligence(t *testing.T) {
	cfg := testConfig()
	cfg.Intelligence.Enabled = false
	r := NewRunner(cfg, &fakeScanner{}, &fakeRetention{}, &fakeIntelligence{}, logger.NewNop())
	require.NoError(t, r.Register())

	assert.Equal(t, []string{JobScan, JobRetention}, r.Jobs())
	_, ok := r.NextRun(JobIntelligence)
	assert.False(t, ok)
}

func TestRegister_RejectsInvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Scanner.RetentionSchedule = "every day"
	r := NewRunner(cfg, &fakeScanner{}, &fakeRetention{}, nil, logger.NewNop())

	err := r.Register()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention")
}

func TestExecute_RunsJobsWithCronTrigger(t *testing.T) {
	scanner := &fakeScanner{}
	retention := &fakeRetention{err: errors.New("database down")}
	intel := &fakeIntelligence{}
	r := NewRunner(testConfig(), scanner, retention, intel, logger.NewNop())

	r.execute(JobScan, r.runScan)
	r.execute(JobRetention, r.runRetention)
	r.execute(JobIntelligence, r.runIntelligence)

	assert.Equal(t, []string{TriggerCron}, scanner.triggers)
	assert.Equal(t, 1, retention.calls)
	assert.Equal(t, 1, intel.calls)
}

func TestExecute_SkipsOverlappingTick(t *testing.T) {
	scanner := &fakeScanner{started: make(chan struct{}), release: make(chan struct{})}
	r := NewRunner(testConfig(), scanner, &fakeRetention{}, nil, logger.NewNop())

	done := make(chan struct{})
	go func() {
		r.execute(JobScan, r.runScan)
		close(done)
	}()
	<-scanner.started

	r.execute(JobScan, r.runScan)
	assert.Equal(t, 1, scanner.count())

	close(scanner.release)
	<-done
}

func TestExecute_SkipsAfterShutdown(t *testing.T) {
	scanner := &fakeScanner{}
	r := NewRunner(testConfig(), scanner, &fakeRetention{}, nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	r.execute(JobScan, r.runScan)
	r.Stop()

	assert.Zero(t, scanner.count())
}
