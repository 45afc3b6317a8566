// Command lumo-sweep runs one recurring catch-up pass against the saved
// state and exits. Useful from cron when the server is not kept running.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"lumo/internal/amqp"
	"lumo/internal/config"
	"lumo/internal/core"
	"lumo/internal/ledger"
	applog "lumo/internal/log"
	"lumo/internal/services"
	"lumo/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo, "lumo-sweep")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var (
		store storage.Store
		err   error
	)
	if cfg.DataBackend == "sqlite" {
		store, err = storage.NewSQLiteStore(cfg.SQLiteDBPath)
	} else {
		store, err = storage.NewFileStore(cfg.StateFilePath)
	}
	if err != nil {
		logger.Error("Failed to initialize state store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	state, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		os.Exit(1)
	}
	if state == nil {
		logger.Info("No saved state, nothing to sweep")
		return
	}

	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	lgr := ledger.New(state)
	engine := services.NewRecurrenceEngine(publisher)
	created := engine.CatchUp(ctx, lgr, core.Today())
	if created == 0 {
		logger.Info("Nothing due, state unchanged")
		return
	}
	if err := store.Save(ctx, lgr.State()); err != nil {
		logger.Error("Failed to persist state after sweep", "error", err)
		os.Exit(1)
	}
	logger.Info("Sweep complete", "transactions_created", created)
}
