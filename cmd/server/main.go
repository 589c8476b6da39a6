package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/analytics"
	"github.com/iliyamo/movie-analytics/internal/config"
	"github.com/iliyamo/movie-analytics/internal/database"
	"github.com/iliyamo/movie-analytics/internal/handler"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/middleware"
	"github.com/iliyamo/movie-analytics/internal/queue"
	"github.com/iliyamo/movie-analytics/internal/repository"
	"github.com/iliyamo/movie-analytics/internal/router"
	"github.com/iliyamo/movie-analytics/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; response cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	purge := func(ctx context.Context) (int64, error) {
		return middleware.PurgeCache(ctx, rdb, cacheCfg.Prefix)
	}

	datasets := analytics.NewCache()
	if _, err := datasets.Get(cfg.DataDir); err != nil {
		// served as 503 until a pipeline run lands
		log.Warn("dataset not loaded at startup", "data_dir", cfg.DataDir, "error", err)
	}

	publisher := service.NewPublisher(cfg.AMQPURL, log)
	analyticsH := handler.NewAnalyticsHandler(datasets, cfg.DataDir, log)
	analyticsH.Purge = purge
	ticketsH := handler.NewTicketHandler(repository.NewTicketRepo(db), publisher, log)
	authH := handler.NewAuthHandler(cfg, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))
	router.RegisterRoutes(e)
	router.RegisterAnalytics(e, analyticsH, middleware.NewRedisCache(cacheCfg, rdb, log), cfg.JWTSecret)
	router.RegisterAuth(e, authH)
	router.RegisterTickets(e, ticketsH, cfg.JWTSecret)

	if cfg.ConsumerEnabled {
		handlers := map[string]queue.Handler{
			queue.PipelineCompletedQueue: queue.RefreshDataset(datasets, cfg.DataDir, purge, log),
			queue.TicketsBookedQueue:     queue.BookingLog(cfg.BookingLog),
		}
		consumer := &queue.Consumer{
			URL:      cfg.AMQPURL,
			Handlers: handlers,
			Log:      log.With("component", "consumer"),
			Prefetch: 10,
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("consumer stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env, "data_dir", cfg.DataDir)
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
