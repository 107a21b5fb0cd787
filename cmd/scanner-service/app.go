package main

import (
	"fmt"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/internal/scanner/service"
	"golang-insider-scanner/internal/scanner/strategy"
	"golang-insider-scanner/pkg/common"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/metrics"
	"golang-insider-scanner/pkg/postgres"
	"golang-insider-scanner/pkg/redis"
	"golang-insider-scanner/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds every wired service shared by the serve and scan commands.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *postgres.DB
	redis    *redis.Client
	registry *prometheus.Registry

	scanner      service.ScannerService
	ledger       service.LedgerService
	history      service.ScanHistoryService
	retention    service.RetentionService
	intelligence service.IntelligenceService
}

func newApp(cfg *config.Config, appLogger *logger.Logger) (*app, error) {
	if err := utils.SetLocation(cfg.App.TimeZone); err != nil {
		return nil, fmt.Errorf("invalid time zone: %w", err)
	}

	// The notifier is built before any connection is opened.
	notifier, err := service.NewNotifier(cfg, appLogger, service.LedgerMode(cfg.Ledger.PaperTrading))
	if err != nil {
		return nil, err
	}

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	// Initialize repositories
	seenRepo := repository.NewSeenSignalRepository(db.DB)
	sentRepo := repository.NewSentAlertRepository(db.DB)
	powerRepo := repository.NewPowerTraderRepository(db.DB)
	ledgerRepo := repository.NewLedgerRepository(db.DB)
	runRepo := repository.NewScanRunRepository(db.DB)
	lockRepo := repository.NewScanLockRepository(redisClient.Client, redisKey(cfg, common.RedisKeyScanLock))
	statusRepo := repository.NewScanStatusRepository(redisClient.Client, redisKey(cfg, common.RedisKeyLastScan))
	congressFeed := repository.NewCongressFeedRepository(cfg, appLogger)
	secFeed := repository.NewSECFeedRepository(cfg, appLogger)
	polymarketFeed := repository.NewPolymarketFeedRepository(cfg, appLogger)
	discoveryFeed := repository.NewDiscoveryFeedRepository(cfg.Sources.RequestTimeout, appLogger)

	// Initialize strategies
	powerTraders := strategy.NewPowerTraderRegistry(powerRepo, cfg.Scanner.PowerTraderTTL)
	strategies := []strategy.SourceStrategy{
		strategy.NewCongressStrategy(cfg, appLogger, congressFeed, seenRepo, powerTraders),
		strategy.NewSECStrategy(cfg, appLogger, secFeed, seenRepo),
		strategy.NewPolymarketStrategy(cfg, appLogger, polymarketFeed, seenRepo),
	}

	// Initialize services
	ledgerSvc := service.NewLedgerService(ledgerRepo, appLogger, cfg.Ledger.PaperTrading, cfg.Ledger.RecentTrades)
	gate := service.NewAlertGate(sentRepo, notifier, appLogger, cfg.Policy.MaxAlertsPerDay, utils.GetLocation())

	return &app{
		cfg:      cfg,
		logger:   appLogger,
		db:       db,
		redis:    redisClient,
		registry: registry,
		scanner: service.NewScannerService(
			strategies, gate, service.PolicyFromConfig(cfg.Policy),
			runRepo, lockRepo, statusRepo, recorder, appLogger, cfg.Scanner.Timeout,
		),
		ledger:    ledgerSvc,
		history:   service.NewScanHistoryService(runRepo, statusRepo, appLogger),
		retention: service.NewRetentionService(seenRepo, sentRepo, runRepo, appLogger, cfg.Scanner.SeenRetentionDays, cfg.Scanner.SentRetentionDays),
		intelligence: service.NewIntelligenceService(
			cfg, appLogger, congressFeed, secFeed, polymarketFeed, discoveryFeed, powerRepo, powerTraders, notifier,
		),
	}, nil
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("Failed to close redis", logger.ErrorField(err))
	}
	closeDB(a.db)
}

func closeDB(db *postgres.DB) {
	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func redisKey(cfg *config.Config, key string) string {
	if cfg.Redis.Prefix == "" {
		return key
	}
	return cfg.Redis.Prefix + ":" + key
}
