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

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/config"
	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/mongodb"
	"github.com/mamadbah2/barstock/internal/repository/redis"
	"github.com/mamadbah2/barstock/internal/repository/sheets"
	"github.com/mamadbah2/barstock/internal/repository/slots"
	"github.com/mamadbah2/barstock/internal/scheduler"
	"github.com/mamadbah2/barstock/internal/server/handlers"
	"github.com/mamadbah2/barstock/internal/server/router"
	exportsvc "github.com/mamadbah2/barstock/internal/service/export"
	reportingsvc "github.com/mamadbah2/barstock/internal/service/reporting"
	trackingsvc "github.com/mamadbah2/barstock/internal/service/tracking"
	whatsappclient "github.com/mamadbah2/barstock/pkg/clients/whatsapp"
	"github.com/mamadbah2/barstock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := openStore(context.Background(), cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init slot store", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeStore()

	trackingSvc := trackingsvc.NewService(store, baseLogger.Named("svc.tracking"))
	if err := trackingSvc.Load(context.Background()); err != nil {
		baseLogger.Fatal("failed to load inventory state", zap.Error(err))
	}

	thresholds := inventory.Thresholds{MinServings: cfg.Stock.MinServings, MinPercentage: cfg.Stock.MinPercentage}
	reportingSvc := reportingsvc.NewService(trackingSvc, thresholds, baseLogger.Named("svc.reporting"))
	trackingSvc.Subscribe(reportingSvc.Observe)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets not configured, sheet export disabled")
	}
	exportSvc := exportsvc.NewService(trackingSvc, sheetsRepo, baseLogger.Named("svc.export"))

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		sched, err := scheduler.NewScheduler(cfg.Reporting, cfg.WhatsApp.ManagerID, reportingSvc, whatsClient, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("whatsapp credentials missing, stock digest disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Liquor:    handlers.NewLiquorHandler(trackingSvc.Liquor, reportingSvc, exportSvc, baseLogger.Named("handlers.liquor")),
		Beer:      handlers.NewBeerHandler(trackingSvc.Beer, reportingSvc, exportSvc, baseLogger.Named("handlers.beer")),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, exportSvc, baseLogger.Named("handlers.dashboard")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

// openStore builds the slot store selected by STORAGE_BACKEND. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (slots.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Warn("using in-memory storage, state is lost on restart")
		return slots.NewMemory(), noop, nil

	case config.StorageFile:
		store, err := slots.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		log.Info("using file storage", zap.String("dir", cfg.Storage.Dir))
		return store, noop, nil

	case config.StorageRedis:
		store, err := redis.NewStore(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Namespace)
		if err != nil {
			return nil, noop, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("using redis storage", zap.String("addr", cfg.Redis.Addr), zap.String("namespace", cfg.Redis.Namespace))
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close redis connection", zap.Error(err))
			}
		}, nil

	case config.StorageMongo:
		store, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, noop, err
		}
		log.Info("using mongodb storage", zap.String("db", cfg.MongoDB.DBName))
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
