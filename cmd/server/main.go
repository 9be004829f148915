package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/radityabagas/bucketadmin/internal/api"
	"github.com/radityabagas/bucketadmin/internal/cache"
	"github.com/radityabagas/bucketadmin/internal/config"
	"github.com/radityabagas/bucketadmin/internal/repository"
	"github.com/radityabagas/bucketadmin/internal/repository/postgres"
	"github.com/radityabagas/bucketadmin/internal/service"
	"github.com/radityabagas/bucketadmin/internal/storage"
	"github.com/radityabagas/bucketadmin/internal/transfer"
	"github.com/radityabagas/bucketadmin/internal/webhook"
	"github.com/radityabagas/bucketadmin/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize object store client
	store, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize object store client")
	}

	// Initialize audit repository
	auditRepo := repository.NewNoopAuditRepository()
	if cfg.Database.Host != "" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		auditRepo, err = postgres.NewAuditRepository(db)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize audit repository")
		}
	}

	// Initialize webhook notifier
	var notifier webhook.Notifier = webhook.NewNoopNotifier()
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewHTTPNotifier(cfg.Webhook)
	}

	// Initialize listing cache
	listingCache, err := cache.NewListingCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize listing cache")
	}

	// Initialize services
	orch := transfer.New(store,
		transfer.WithPageSize(cfg.Transfer.PageSize),
		transfer.WithPacer(transfer.FixedPacer{Delay: time.Duration(cfg.Transfer.PageDelayMs) * time.Millisecond}),
	)
	folderService := service.NewFolderService(orch, auditRepo, notifier, listingCache)
	listingService := service.NewListingService(transfer.NewPrefixLister(store, cfg.Transfer.PageSize), listingCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Folders:  folderService,
		Listings: listingService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
