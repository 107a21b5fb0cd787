package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-insider-scanner/internal/scanner/config"
	"golang-insider-scanner/internal/scanner/delivery/cron"
	delivery "golang-insider-scanner/internal/scanner/delivery/http"
	_ "golang-insider-scanner/internal/scanner/docs"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scanner service with its HTTP surface and scheduler",
	Run:   runServe,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Runs one scan and prints the result as JSON",
	Run:   runScan,
}

func setup() (*config.Config, *logger.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Insider Scanner", logger.Field("name", cfg.App.Name), logger.Field("env", cfg.App.Env))

	a, err := newApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", logger.ErrorField(err))
	}
	defer a.Close()

	// Start scheduler
	runner := cron.NewRunner(cfg, a.scanner, a.retention, a.intelligence, appLogger)
	if err := runner.Register(); err != nil {
		appLogger.Fatal("Failed to register cron jobs", logger.ErrorField(err))
	}
	runner.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()
	e.Use(middleware.Recover(), middleware.RequestID(), delivery.RequestContext())

	scanHandler := delivery.NewScanHandler(a.scanner, a.ledger, appLogger)
	scanHandler.RegisterHealthRoute(e)

	tokenAuth := delivery.RequireScanToken(cfg.Auth.ScanToken)
	basicAuth := delivery.RequireBasicAuth(cfg.Auth.Username, cfg.Auth.Password)

	apiV1 := e.Group("/api/v1")
	scanHandler.RegisterRoutes(apiV1.Group("/scan", tokenAuth))
	delivery.NewIntelligenceHandler(a.intelligence, appLogger).RegisterRoutes(apiV1.Group("/intelligence", tokenAuth))
	delivery.NewScanHistoryHandler(a.history, appLogger).RegisterRoutes(apiV1.Group("/scans", basicAuth))
	delivery.NewLedgerHandler(a.ledger, appLogger).RegisterRoutes(apiV1.Group("/ledger", basicAuth))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", swagger.WrapHandler)

	delivery.NewStatusHandler(a.ledger, a.history, a.scanner, appLogger).RegisterRoutes(e.Group("", basicAuth))

	if cfg.Auth.ScanToken == "" {
		appLogger.Warn("auth.scan_token is empty, scan and intelligence triggers will reject every request")
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	runner.Stop()

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runScan(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	a, err := newApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", logger.ErrorField(err))
	}
	defer a.Close()

	result := a.scanner.RunScan(ctx, "cli")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		appLogger.Error("Failed to encode scan result", logger.ErrorField(err))
	}
	if result.Status == dto.ScanError {
		a.Close()
		os.Exit(1)
	}
}

// @title Insider Scanner API
// @version 1.0
// @description Scan trigger, scan history, paper ledger and intelligence refresh endpoints.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scanner-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, scanCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scanner-service CLI: %s\n", err)
		os.Exit(1)
	}
}
