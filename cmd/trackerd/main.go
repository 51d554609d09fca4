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

	"github.com/frodoferhat/BreastfeedingTracker/config"
	"github.com/frodoferhat/BreastfeedingTracker/internal/api"
	"github.com/frodoferhat/BreastfeedingTracker/internal/db"
	"github.com/frodoferhat/BreastfeedingTracker/internal/notification"
	"github.com/frodoferhat/BreastfeedingTracker/internal/session"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "tracker-backend ", log.LstdFlags)

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

	// Push is optional: without VAPID keys the app runs fine, it just
	// cannot deliver feeding reminders.
	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else if cfg.Reminder.Enabled {
		logger.Println("reminders are enabled but VAPID keys are missing; reminders will not be sent")
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

	// Create the store layer instance
	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// The controller owns the live feeding session state.
	controller := session.NewController(appStore)

	// Run the reminder scheduler in the background. Run returns
	// immediately when reminders are disabled or push is not configured.
	scheduler := notification.NewScheduler(cfg, appStore, webpushOptions)
	go scheduler.Run(ctx)

	// Initialize router
	router := api.NewRouter(cfg, appStore, controller, webpushOptions)
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

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	// Persist a final phase snapshot so an open session survives restart.
	controller.Close(shutdownCtx)

	logger.Println("Server gracefully stopped")
}
