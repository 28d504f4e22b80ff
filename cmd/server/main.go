package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mbodji/stockroom/internal/config"
	"github.com/mbodji/stockroom/internal/inventory"
	"github.com/mbodji/stockroom/internal/scheduler"
	"github.com/mbodji/stockroom/internal/server/handlers"
	"github.com/mbodji/stockroom/internal/server/router"
	stocksvc "github.com/mbodji/stockroom/internal/service/stock"
	"github.com/mbodji/stockroom/pkg/clients/alert"
	"github.com/mbodji/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	journal := inventory.NewMemoryJournal(cfg.Inventory.JournalCapacity)
	store := inventory.New(baseLogger.Named("inventory"), journal)
	stockService := stocksvc.NewService(store, journal, cfg.Inventory.FilePath, baseLogger.Named("svc.stock"))

	// Restore whatever the last run persisted; a missing file just means a
	// fresh inventory, and a corrupt one keeps the empty stock.
	if err := stockService.Restore(); err != nil {
		baseLogger.Warn("starting with empty inventory", zap.Error(err))
	}

	var alerter alert.Client
	if cfg.Alert.WebhookURL != "" {
		alerter = alert.NewClient(cfg.Alert.WebhookURL)
		baseLogger.Info("low-stock webhook alerts enabled")
	} else {
		baseLogger.Info("no alert webhook configured, low-stock sweeps only log")
	}

	stockHandler := handlers.NewStockHandler(stockService, cfg.Inventory.LowStockThreshold, baseLogger.Named("handlers.stock"))
	engine := router.New(stockHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, stockService, alerter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Last chance to keep the on-disk inventory current.
	if err := stockService.Persist(); err != nil {
		baseLogger.Error("final save failed", zap.Error(err))
	}
}
