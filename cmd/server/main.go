// Package main implements the entry point for the souq API server, an
// e-commerce backend serving the catalog, carts, orders and reviews.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/souqhq/souq-api/internal/config"
	"github.com/souqhq/souq-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
