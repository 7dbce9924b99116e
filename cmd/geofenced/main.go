package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"geofence-alert-backend/config"
	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/api"
	"geofence-alert-backend/internal/db"
	"geofence-alert-backend/internal/engine"
	"geofence-alert-backend/internal/live"
	"geofence-alert-backend/internal/notification"
	"geofence-alert-backend/internal/snapshot"
)

func main() {
	logger := log.New(os.Stdout, "geofenced ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live alert feed
	hub := live.NewHub()

	// Push notification sink; optional so the engine still alerts via
	// the other sinks when no VAPID keys are configured.
	var notifier alert.Notifier
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
		workerPool.Start(ctx)
		notifier = workerPool
	} else {
		logger.Println("VAPID keys not configured; web push notifications are disabled")
	}

	// Evaluation engine: snapshot client -> tracker -> rules -> cooldown -> sinks
	emitter := alert.NewEmitter(alert.NewGormStore(gormDB), notifier, hub)
	snapshotClient := snapshot.NewClient(&cfg.Snapshot)
	engineSvc := engine.NewService(&cfg.Engine, snapshotClient, emitter)
	go engineSvc.Run(ctx)

	// Initialize router
	router := api.NewRouter(&cfg.Server, gormDB, &webpushOptions, hub)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
