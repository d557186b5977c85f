package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"planetgen/internal/middleware"
	"planetgen/internal/planet"
	"planetgen/internal/server"
	serverHandlers "planetgen/internal/server/handlers"
	"planetgen/internal/shared/config"
	"planetgen/internal/shared/database"
	"planetgen/internal/shared/logger"
	"planetgen/internal/shared/redis"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	var (
		store      planet.Store
		dbPinger   serverHandlers.Pinger
		cache      planet.TextureCache
		rdbPinger  serverHandlers.Pinger
		serviceLog = slog.Default()
	)

	if db != nil {
		if err := db.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		store = planet.NewRepository(db, serviceLog)
		dbPinger = db
	}

	rdb, err := redis.Connect(ctx)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory texture cache", "error", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis", "error", err)
		}
	}()

	if rdb != nil {
		cache = planet.NewRedisCache(rdb.Client, cfg.Generator.CacheTTL, serviceLog)
		rdbPinger = rdb
	} else {
		cache = planet.NewMemoryCache(cfg.Generator.MemoryCacheEntries, cfg.Generator.MemoryCacheBytes, cfg.Generator.CacheTTL)
	}

	planetService := planet.NewService(store, cache, planet.ServiceConfig{
		DefaultSize: cfg.Generator.DefaultSize,
		Workers:     cfg.Generator.Workers,
		MaxBatch:    cfg.Generator.MaxBatch,
		MaxSize:     cfg.Generator.MaxSize,
	}, serviceLog)

	mux := server.NewRoutes(planetService, dbPinger, rdbPinger, cfg.Auth.JWTSecret).Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx)

	handler := middleware.NewCORS(cfg.Frontend).Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Planet server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
