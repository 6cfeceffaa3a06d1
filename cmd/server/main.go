package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/config"
	"github.com/mamadbah2/poultry-stock/internal/repository/mongodb"
	"github.com/mamadbah2/poultry-stock/internal/repository/sheets"
	"github.com/mamadbah2/poultry-stock/internal/scheduler"
	"github.com/mamadbah2/poultry-stock/internal/server/handlers"
	"github.com/mamadbah2/poultry-stock/internal/server/router"
	"github.com/mamadbah2/poultry-stock/internal/service/reconciliation"
	reportingsvc "github.com/mamadbah2/poultry-stock/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/poultry-stock/internal/service/whatsapp"
	"github.com/mamadbah2/poultry-stock/pkg/clients/inventory"
	whatsappclient "github.com/mamadbah2/poultry-stock/pkg/clients/whatsapp"
	"github.com/mamadbah2/poultry-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongo"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// publisher stays a nil interface when sheets are disabled
	var publisher sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		publisher = sheetsRepo
	} else {
		baseLogger.Warn("google sheet report id missing, sheet publishing disabled")
	}

	inventoryClient := inventory.NewClient(cfg.InventoryAPI)
	thresholds := reconciliation.Thresholds{NaturalLossRatio: cfg.Reporting.NaturalLossRatio}
	reportingSvc := reportingsvc.NewService(inventoryClient, mongoRepo, publisher, thresholds, baseLogger.Named("svc.reporting"))

	var notifier whatsappsvc.Notifier
	var notifyHandler *handlers.NotifyHandler
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		metaNotifier := whatsappsvc.NewMetaWhatsAppNotifier(cfg.WhatsApp.OwnerID, whatsClient, baseLogger.Named("svc.whatsapp"))
		notifier = metaNotifier
		notifyHandler = handlers.NewNotifyHandler(metaNotifier, baseLogger.Named("handlers.notify"))
	} else {
		baseLogger.Warn("whatsapp token missing, notifications disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	location, _ := time.LoadLocation(cfg.Reporting.Timezone)
	stockHandler := handlers.NewStockHandler(reportingSvc, location, baseLogger.Named("handlers.stock"))
	engine := router.New(stockHandler, notifyHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
}
