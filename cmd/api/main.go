package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/docs"
	"github.com/centinela-seguridad/cpq-api/internal/auth"
	"github.com/centinela-seguridad/cpq-api/internal/config"
	"github.com/centinela-seguridad/cpq-api/internal/database"
	"github.com/centinela-seguridad/cpq-api/internal/erp"
	"github.com/centinela-seguridad/cpq-api/internal/http/handler"
	"github.com/centinela-seguridad/cpq-api/internal/http/middleware"
	"github.com/centinela-seguridad/cpq-api/internal/http/router"
	"github.com/centinela-seguridad/cpq-api/internal/jobs"
	"github.com/centinela-seguridad/cpq-api/internal/logger"
	"github.com/centinela-seguridad/cpq-api/internal/repository"
	"github.com/centinela-seguridad/cpq-api/internal/service"
	"github.com/centinela-seguridad/cpq-api/internal/storage"
)

// @title Centinela CPQ API
// @version 1.0
// @description Quoting API for security guard services: clients, cost catalog, quote cost aggregation and sale price allocation

// @contact.name API Support
// @contact.email soporte@centinela.cl

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "cpq-staging.centinela.cl"
	case "production":
		docs.SwaggerInfo.Host = "cpq.centinela.cl"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from the key vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// ERP warehouse connection is optional and read-only; the app
	// continues without it when not configured
	var erpClient *erp.Client
	if cfg.ERP.Enabled {
		erpClient, err = erp.NewClient(&cfg.ERP, log)
		if err != nil {
			log.Warn("ERP connection failed, continuing without it", zap.Error(err))
		} else if erpClient != nil {
			log.Info("ERP warehouse connected",
				zap.Int("max_open_conns", cfg.ERP.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.ERP.QueryTimeout),
			)
		}
	} else {
		log.Info("ERP warehouse not configured, skipping")
	}

	// Repositories
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	costRepo := repository.NewQuoteCostRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Services
	recalc := service.NewRecalculator(quoteRepo, costRepo, positionRepo, catalogRepo, log)
	clientService := service.NewClientService(clientRepo, activityRepo, log)
	catalogService := service.NewCatalogService(catalogRepo, erpClient, log)
	quoteService := service.NewQuoteService(quoteRepo, clientRepo, costRepo, positionRepo, catalogRepo, settingsRepo, activityRepo, recalc, log)
	quoteCostService := service.NewQuoteCostService(quoteRepo, costRepo, catalogRepo, recalc, log)
	positionService := service.NewPositionService(quoteRepo, positionRepo, recalc, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	fileService := service.NewFileService(fileRepo, quoteRepo, fileStorage, cfg.Storage.MaxUploadSizeMB, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(log)
	clientHandler := handler.NewClientHandler(clientService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	quoteCostHandler := handler.NewQuoteCostHandler(quoteCostService, log)
	positionHandler := handler.NewPositionHandler(positionService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	fileHandler := handler.NewFileHandler(fileService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		clientHandler,
		catalogHandler,
		quoteHandler,
		quoteCostHandler,
		positionHandler,
		settingsHandler,
		fileHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled && erpClient != nil {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterCatalogSyncJob(
			scheduler,
			catalogService,
			log,
			cfg.Jobs.CatalogSyncSchedule,
			cfg.ERP.QueryTimeoutDuration(),
		); err != nil {
			log.Error("Failed to register catalog sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with catalog sync job",
				zap.String("cron_expr", cfg.Jobs.CatalogSyncSchedule),
			)
		}
	} else {
		log.Info("Catalog sync job disabled",
			zap.Bool("jobs_enabled", cfg.Jobs.Enabled),
			zap.Bool("erp_client_available", erpClient != nil),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if erpClient != nil {
			if err := erpClient.Close(); err != nil {
				log.Warn("Error closing ERP connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
