package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"user_register/internal/app"
	"user_register/internal/config"
	"user_register/internal/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New("register", cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	application, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	// --- Start Server ---
	if err := application.Run(ctx); err != nil {
		appLogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
