package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"lumo/internal/amqp"
	"lumo/internal/config"
	"lumo/internal/core"
	apphttp "lumo/internal/http"
	"lumo/internal/ledger"
	applog "lumo/internal/log"
	"lumo/internal/services"
	"lumo/internal/storage"
)

func main() {
	// Load .env for local development; absent in containers.
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo, "lumo")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize state store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	state, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		os.Exit(1)
	}
	lgr := ledger.New(state)
	if state == nil {
		logger.Info("No saved state found, starting from defaults")
		if err := store.Save(ctx, lgr.State()); err != nil {
			logger.Error("Failed to persist default state", "error", err)
		}
	}

	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange)
		}
	}

	// Startup catch-up pass: bring every recurring rule up to date
	// before serving anything.
	engine := services.NewRecurrenceEngine(publisher)
	if created := engine.CatchUp(ctx, lgr, core.Today()); created > 0 {
		logger.Info("Recurring catch-up complete", "transactions_created", created)
		if err := store.Save(ctx, lgr.State()); err != nil {
			logger.Error("Failed to persist state after catch-up", "error", err)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, lgr, store, engine, publisher)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.ReadTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("Starting lumo server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == "sqlite" {
		return storage.NewSQLiteStore(cfg.SQLiteDBPath)
	}
	return storage.NewFileStore(cfg.StateFilePath)
}
