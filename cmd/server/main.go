package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lfmorais/acervo-digital/internal/config"
	"github.com/lfmorais/acervo-digital/internal/db"
	"github.com/lfmorais/acervo-digital/internal/repository"
	"github.com/lfmorais/acervo-digital/internal/router"
	"github.com/lfmorais/acervo-digital/internal/services"
	"github.com/lfmorais/acervo-digital/internal/storage"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Ensure schema and seed rows exist before serving traffic
	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	if err := db.Seed(database); err != nil {
		logger.Fatal("Failed to seed reference data", "error", err)
	}

	// Initialize file storage
	var fileStore storage.FileStore
	switch cfg.StorageBackend {
	case "s3":
		fileStore, err = storage.NewS3Store(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
	default:
		fileStore, err = storage.NewLocalStore(cfg.UploadDir)
	}
	if err != nil {
		logger.Fatal("Failed to initialize file storage", "error", err, "backend", cfg.StorageBackend)
	}

	// Wire services
	repo := repository.NewRepository(database)
	sentenceService := services.NewSentenceService(repo, fileStore, logger)
	catalogService := services.NewCatalogService(repo, logger)

	// Setup HTTP router
	handler := router.NewRouter(sentenceService, catalogService, cfg.MaxUploadSize, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
