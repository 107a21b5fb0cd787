package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/utils"

	"github.com/robfig/cron/v3"
)

// TriggerCron marks scans started by the scheduler.
const TriggerCron = "cron"

const (
	JobScan         = "scan"
	JobRetention    = "retention"
	JobIntelligence = "intelligence"
)

// Runner schedules the scan, retention and intelligence jobs.
type Runner struct {
	cron         *cron.Cron
	parser       cron.Parser
	cfg          *config.Config
	scanner      service.ScannerService
	retention    service.RetentionService
	intelligence service.IntelligenceService
	logger       *logger.Logger

	mu      sync.Mutex
	ctx     context.Context
	running map[string]bool
	entries map[string]cron.EntryID
}

// NewRunner creates a runner. Jobs are not registered until Register is called.
func NewRunner(cfg *config.Config, scanner service.ScannerService, retention service.RetentionService, intelligence service.IntelligenceService, log *logger.Logger) *Runner {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Runner{
		cron:         cron.New(cron.WithParser(parser), cron.WithLocation(utils.GetLocation()), cron.WithChain(cron.Recover(cronLogger{log}))),
		parser:       parser,
		cfg:          cfg,
		scanner:      scanner,
		retention:    retention,
		intelligence: intelligence,
		logger:       log,
		ctx:          context.Background(),
		running:      make(map[string]bool),
		entries:      make(map[string]cron.EntryID),
	}
}

// Register validates every schedule and adds the jobs.
func (r *Runner) Register() error {
	jobs := []struct {
		name     string
		schedule string
		fn       func(ctx context.Context)
	}{
		{JobScan, r.cfg.Scanner.Schedule, r.runScan},
		{JobRetention, r.cfg.Scanner.RetentionSchedule, r.runRetention},
	}
	if r.cfg.Intelligence.Enabled && r.intelligence != nil {
		jobs = append(jobs, struct {
			name     string
			schedule string
			fn       func(ctx context.Context)
		}{JobIntelligence, r.cfg.Intelligence.Schedule, r.runIntelligence})
	}

	for _, job := range jobs {
		if _, err := r.parser.Parse(job.schedule); err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", job.name, job.schedule, err)
		}
		name, fn := job.name, job.fn
		id, err := r.cron.AddFunc(job.schedule, func() { r.execute(name, fn) })
		if err != nil {
			return fmt.Errorf("failed to add %s job: %w", name, err)
		}
		r.entries[name] = id
		r.logger.Info("Cron job registered", logger.StringField("job", name), logger.StringField("schedule", job.schedule))
	}
	return nil
}

// Start runs the scheduler until Stop. ctx is the parent of every job context.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()
	r.cron.Start()
	r.logger.Info("Cron runner started")
}

// Stop halts scheduling and waits for running jobs to return.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Cron runner stopped")
}

// NextRun reports when the named job fires next.
func (r *Runner) NextRun(name string) (time.Time, bool) {
	id, ok := r.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return r.cron.Entry(id).Next, true
}

// Jobs returns the registered job names.
func (r *Runner) Jobs() []string {
	names := make([]string, 0, len(r.entries))
	for _, name := range []string{JobScan, JobRetention, JobIntelligence} {
		if _, ok := r.entries[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (r *Runner) execute(name string, fn func(ctx context.Context)) {
	r.mu.Lock()
	if r.running[name] {
		r.mu.Unlock()
		r.logger.Warn("Cron job still running, skipping tick", logger.StringField("job", name))
		return
	}
	r.running[name] = true
	ctx := r.ctx
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running[name] = false
		r.mu.Unlock()
	}()

	if !utils.ShouldContinue(ctx, r.logger) {
		return
	}
	fn(ctx)
}

func (r *Runner) runScan(ctx context.Context) {
	result := r.scanner.RunScan(ctx, TriggerCron)
	if result.Status == dto.ScanError {
		r.logger.Error("Scheduled scan failed", logger.StringField("run_id", result.RunID), logger.StringField("error", result.Error))
		return
	}
	r.logger.Info("Scheduled scan finished",
		logger.StringField("run_id", result.RunID),
		logger.StringField("status", string(result.Status)),
		logger.IntField("signals", result.SignalCount),
		logger.IntField("alerts", len(result.Alerts)),
		logger.IntField("sent", result.SentCount()),
	)
}

func (r *Runner) runRetention(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Scanner.Timeout)
	defer cancel()
	if _, err := r.retention.Purge(ctx); err != nil {
		r.logger.Error("Retention purge failed", logger.ErrorField(err))
	}
}

func (r *Runner) runIntelligence(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Scanner.Timeout)
	defer cancel()
	report, err := r.intelligence.Refresh(ctx)
	if err != nil {
		r.logger.Error("Intelligence refresh failed", logger.ErrorField(err))
		return
	}
	r.logger.Info("Intelligence refresh finished",
		logger.IntField("power_traders", len(report.PowerTraders)),
		logger.IntField("new_traders", len(report.NewTraders)),
		logger.BoolField("registry_updated", report.RegistryUpdate),
	)
}

// cronLogger adapts the zap logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
