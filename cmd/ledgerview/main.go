package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledgerview/internal/amqp"
	"ledgerview/internal/cache"
	"ledgerview/internal/config"
	apphttp "ledgerview/internal/http"
	"ledgerview/internal/ledger"
	applog "ledgerview/internal/log"
	"ledgerview/internal/source"
	"ledgerview/internal/storage"
)

func main() {
	// .env is for local development; ignore errors in production.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// SQLite warm cache is best effort: without it the server still
	// runs, it just starts cold.
	var repo *storage.Repository
	if r, err := storage.NewRepository(cfg.SQLiteDBPath); err != nil {
		logger.Warn("Failed to open transaction cache, starting cold", "error", err, "path", cfg.SQLiteDBPath)
	} else {
		repo = r
		defer repo.Close()
	}

	src := source.NewCachingSource(source.NewGenerator(cfg.GeneratorSeed), repo)
	store := ledger.NewStore(src)

	// Derivation caches get periodic expiry cleanup.
	cacheManager := cache.NewManager()
	for _, c := range store.Caches() {
		cacheManager.Register(c)
	}
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	// Publish a refresh notification whenever the canonical set is
	// replaced. Filter and sort changes bump nothing downstream.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			defer amqpClient.Close()
			var lastVersion atomic.Uint64
			store.Subscribe(func() {
				version := store.Version()
				if version == 0 || lastVersion.Swap(version) == version {
					return
				}
				stats := store.Stats()
				msg := amqp.NewRefreshMessage(stats.TotalTransactions, stats.CurrentBalance.Cents)
				if err := amqpClient.PublishRefresh(context.Background(), msg); err != nil {
					logger.Error("Failed to publish refresh message", "error", err)
				}
			})
			logger.Info("Initialized AMQP notifications",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	// Warm start from the cache when possible, otherwise do a first
	// synchronous load from the generator.
	if cached, err := src.WarmStart(ctx); err != nil {
		logger.Warn("Warm start failed", "error", err)
	} else if len(cached) > 0 {
		store.Bootstrap(cached)
		logger.Info("Warm started from transaction cache", "transactions", len(cached))
	}
	if store.Len() == 0 {
		if err := store.Load(ctx, cfg.DatasetSize); err != nil {
			logger.Error("Initial load failed", "error", err)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, cfg.DatasetSize, cfg.RateLimitPerMinute)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting ledgerview server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
