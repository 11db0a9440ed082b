package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"expensed/internal/api"
	"expensed/internal/api/middleware"
	"expensed/internal/cache"
	"expensed/internal/config"
	"expensed/internal/db"
	"expensed/internal/service"
	"expensed/internal/version"
)

func main() {
	cfg := config.Load()

	// ----- logger -----------------
	var formatter log.Formatter
	if cfg.LogFormat == "json" {
		formatter = log.JSONFormatter
	} else {
		formatter = log.TextFormatter
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
	})

	logger.Info("starting", "version", version.FullVersion())

	// ----- migrations -------------
	logger.Info("running database migrations")
	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run database migrations", "err", err)
	}
	logger.Info("database migrations completed successfully")

	// ----- database ---------------
	store, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", "err", err)
	}
	defer store.Close()
	logger.Info("database connection established")

	// ----- cache ------------------
	var statsCache *cache.Cache
	if cfg.RedisURL != "" {
		statsCache, err = cache.New(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", "err", err)
			statsCache = nil
		} else {
			defer statsCache.Close()
			logger.Info("redis cache connected")
		}
	}

	// ----- services ---------------
	services := service.New(store, statsCache, logger)

	// ----- api layer --------------
	srv := api.NewServer(services, logger.WithPrefix("api"))
	handler := srv.Handler(&middleware.AuthConfig{JWKSURL: cfg.JWKSURL})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server is listening", "addr", cfg.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("server error", "err", err)

	case <-quit:
		logger.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			server.Close()
		}
	}

	logger.Info("server shutdown complete")
}
