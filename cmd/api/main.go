package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clusterview-backend/infrastructure/config"
	"clusterview-backend/infrastructure/di"
	"clusterview-backend/infrastructure/ingestion"
	"clusterview-backend/infrastructure/tracing"

	"go.uber.org/zap"
)

func main() {
	// Initialize context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Set up distributed tracing
	if cfg.EnableTracing {
		tp, err := tracing.InitTracing("clusterview-backend", cfg.Environment, cfg.TracingEndpoint)
		if err != nil {
			container.Logger.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				container.Logger.Error("Tracer shutdown error", zap.Error(err))
			}
		}()
	}

	// Ingest the initial document when a source is configured. The server
	// still starts without one; /ready reports unavailable until a reload
	// succeeds.
	if cfg.DocumentPath != "" || cfg.DocumentURL != "" {
		if err := container.Controller.LoadFrom(ctx, container.GraphSource); err != nil {
			container.Logger.Error("Initial document load failed", zap.Error(err))
		}
	}

	// Watch the local document for edits and reload on change
	if cfg.WatchDocument && cfg.DocumentPath != "" {
		watcher, err := ingestion.NewDocumentWatcher(cfg.DocumentPath, func(ctx context.Context) {
			if err := container.Controller.LoadFrom(ctx, container.GraphSource); err != nil {
				container.Logger.Error("Document reload failed", zap.Error(err))
			}
		}, container.Logger)
		if err != nil {
			container.Logger.Error("Failed to start document watcher", zap.Error(err))
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      container.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
