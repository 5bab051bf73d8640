package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"hotzaot/internal/cache"
	"hotzaot/internal/config"
	apphttp "hotzaot/internal/http"
	"hotzaot/internal/log"
	"hotzaot/internal/services"
	"hotzaot/internal/state"
	"hotzaot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentApp})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	appLogger := logger.WithComponent(log.ComponentApp)

	store, err := storage.NewSlotStore(cfg.SQLiteDBPath, logger)
	if err != nil {
		appLogger.Error("Failed to open slot store", log.FieldError, err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appState := state.New(ctx, store, logger)

	summaries := cache.NewLRUCache[services.Summary](cfg.CacheMaxEntries, cfg.CacheTTL)
	cacheManager := cache.NewManager(logger)
	cacheManager.Register(summaries)
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	dashboard := services.NewDashboardService(appState, summaries, logger)
	expenses := services.NewExpenseService(appState, dashboard, logger)

	srv := apphttp.NewServer(":"+cfg.Port, appState, dashboard, expenses)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", "port", cfg.Port, "db_path", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	appLogger.Info("Server stopped gracefully")
}
