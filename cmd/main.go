package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grindzone/grindzone-api/config"
	"github.com/grindzone/grindzone-api/db"
	"github.com/grindzone/grindzone-api/handlers"
	"github.com/grindzone/grindzone-api/metrics"
	"github.com/grindzone/grindzone-api/realtime"
	"github.com/grindzone/grindzone-api/repositories"
	api "github.com/grindzone/grindzone-api/routes"
	"github.com/grindzone/grindzone-api/services"
	"github.com/grindzone/grindzone-api/storage"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func newLogger(cfg *config.Config) *slog.Logger {
	formatter := charmlog.JSONFormatter
	if cfg.LogFormat == config.LogFormatText {
		formatter = charmlog.TextFormatter
	}
	handler := charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		Level:           charmlog.Level(cfg.LogLevel),
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return slog.New(handler)
}

// openStorage выбирает KV-бэкенд по конфигурации. uploader == nil, если R2 не настроен.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KVStore, storage.FileUploader, func(), error) {
	var r2 *storage.CloudflareR2Store
	if cfg.R2Configured() {
		var err error
		r2, err = storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
			KeyPrefix:       cfg.R2KeyPrefix,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize Cloudflare R2: %w", err)
		}
		logger.Info("Cloudflare R2 initialized", slog.String("bucket", cfg.R2BucketName))
	}

	var uploader storage.FileUploader
	if r2 != nil {
		uploader = r2
	}
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendPostgres, config.BackendSQLite:
		driver, dsn := db.DriverPostgres, cfg.DatabaseURL
		if cfg.StorageBackend == config.BackendSQLite {
			driver, dsn = db.DriverSQLite, cfg.SQLitePath
		}
		conn, err := db.Open(driver, dsn, dbConnectTimeout, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}
		return storage.NewSQLStore(conn), uploader, closeFn, nil

	case config.BackendR2:
		return r2, uploader, noop, nil

	default:
		logger.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), uploader, noop, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageBackend))

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	store, uploader, closeStore, err := openStorage(appCtx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	tournamentRepo := repositories.NewKVTournamentRepository(store)
	paymentRepo := repositories.NewKVPaymentRepository(store)
	logger.Info("Repositories initialized")

	if cfg.SeedDefaults {
		if err := services.Seed(appCtx, tournamentRepo, paymentRepo, logger); err != nil {
			// хранилище может подняться позже, списки просто будут пустыми
			logger.Error("failed to seed default data", slog.Any("error", err))
		}
	}

	metricsSvc := metrics.NewService(prometheus.DefaultRegisterer)
	metricsHandler := metrics.NewHandler(prometheus.DefaultGatherer)

	wsHub := realtime.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket Hub started")

	tournamentService := services.NewTournamentService(tournamentRepo, uploader, wsHub, logger)
	registrationService := services.NewRegistrationService(tournamentRepo, paymentRepo, metricsSvc, wsHub, logger)
	paymentService := services.NewPaymentService(paymentRepo, logger)
	dashboardService := services.NewDashboardService(tournamentRepo, paymentRepo)
	logger.Info("Services initialized")

	sweeper := services.NewStatusSweeper(tournamentRepo, wsHub, metricsSvc, logger)
	scheduler, err := sweeper.Start(appCtx, cfg.StatusSweepInterval)
	if err != nil {
		logger.Error("failed to start status sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop status sweeper", slog.Any("error", err))
		}
	}()

	allowOrigin := func(origin string) bool {
		for _, o := range cfg.CORSAllowedOrigins {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Payment:      handlers.NewPaymentHandler(paymentService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, allowOrigin),
		Health:       handlers.NewHealthHandler(store),
	}, api.Options{
		Logger:         logger,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancelApp()
			return
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	cancelApp()
	logger.Info("application exited")
}
