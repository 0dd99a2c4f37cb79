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
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/plant-decor/internal/audit"
	"github.com/BruksfildServices01/plant-decor/internal/clock"
	"github.com/BruksfildServices01/plant-decor/internal/config"
	dbpkg "github.com/BruksfildServices01/plant-decor/internal/db"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	infraRepo "github.com/BruksfildServices01/plant-decor/internal/infra/repository"
	"github.com/BruksfildServices01/plant-decor/internal/logger"
	"github.com/BruksfildServices01/plant-decor/internal/metrics"
	"github.com/BruksfildServices01/plant-decor/internal/payment"
	"github.com/BruksfildServices01/plant-decor/internal/routes"
	"github.com/BruksfildServices01/plant-decor/internal/scheduler"
	"github.com/BruksfildServices01/plant-decor/internal/seed"
	"github.com/BruksfildServices01/plant-decor/internal/storage"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	"github.com/BruksfildServices01/plant-decor/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("main: exiting", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()
	clk := clock.Real{Loc: timezone.Location(cfg.ShopTimezone)}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	var (
		db      *gorm.DB
		rdb     *redis.Client
		repo    state.Repository
		closers []func()
	)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	switch cfg.StateBackend {
	case config.BackendPostgres:
		gdb, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		db = gdb
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
		repo = infraRepo.NewSnapshotGormRepository(db)
	case config.BackendSQLite:
		sq, err := infraRepo.OpenSnapshotSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		closers = append(closers, func() { _ = sq.Close() })
		repo = sq
	case config.BackendRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		repo = infraRepo.NewSnapshotRedisRepository(rdb)
	default:
		repo = infraRepo.NewSnapshotMemoryRepository()
	}
	log.Info("state backend ready", zap.String("backend", cfg.StateBackend))

	// ------------------------------
	// Audit + metrics, fed by the bus
	// ------------------------------
	var (
		sink      audit.Sink = audit.NewZapSink(log)
		auditRepo *infraRepo.AuditGormRepository
	)
	if db != nil {
		auditRepo = infraRepo.NewAuditGormRepository(db)
		sink = auditRepo
	}
	dispatcher := audit.NewDispatcher(audit.New(sink), log)
	m := metrics.New()

	bus := events.NewBus()
	bus.Subscribe(dispatcher.Observe)
	bus.Subscribe(m.Observe)

	// ------------------------------
	// Deferred jobs
	// ------------------------------
	var (
		jobs       scheduler.Scheduler
		asynqQueue *scheduler.Asynq
	)
	if cfg.TaskQueue == config.QueueAsynq {
		asynqQueue = scheduler.NewAsynq(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log)
		jobs = asynqQueue
	} else {
		jobs = scheduler.NewLocal(clk, log)
	}

	// ======================================================
	// 🗃️ STORES
	// ======================================================
	opts := store.Options{Repo: repo, Bus: bus, Clock: clk, Log: log}

	catalog, err := store.NewCatalogStore(ctx, opts)
	if err != nil {
		return err
	}
	carts, err := store.NewCartStore(ctx, opts)
	if err != nil {
		return err
	}
	bus.Subscribe(carts.ObserveCatalog)

	orders, err := store.NewOrderStore(ctx, opts)
	if err != nil {
		return err
	}
	care, err := store.NewCareServiceStore(ctx, opts, jobs, cfg.CaretakerBuffer)
	if err != nil {
		return err
	}
	chats, err := store.NewChatStore(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := seed.SeedAll(ctx, catalog, care, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// ------------------------------
	// Photos
	// ------------------------------
	var photos storage.PhotoStore = storage.NewMemoryPhotoStore("/photos")
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3PhotoStore(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return err
		}
		photos = s3Store
	}

	// ------------------------------
	// Payments
	// ------------------------------
	var payments payment.Gateway = payment.Offline{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.PaymentCurrency)
		if err != nil {
			return err
		}
		payments = mp
	}

	sweeper, err := scheduler.NewSweeper(cfg.SweepSchedule, care, clk, log)
	if err != nil {
		return err
	}

	if asynqQueue != nil {
		if err := asynqQueue.Start(); err != nil {
			return fmt.Errorf("start asynq: %w", err)
		}
	}
	sweeper.Sweep()
	sweeper.Start()

	// workers stop before the audit queue drains
	stopWorkers := func() {
		sweeper.Stop()
		if asynqQueue != nil {
			asynqQueue.Shutdown()
		}
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	deps := routes.Deps{
		Config:   cfg,
		Log:      log,
		Clock:    clk,
		Metrics:  m,
		Catalog:  catalog,
		Carts:    carts,
		Orders:   orders,
		Care:     care,
		Chats:    chats,
		Photos:   photos,
		Payments: payments,
	}
	if auditRepo != nil {
		deps.AuditLogs = auditRepo
	}
	routes.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
	}
	log.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("main: server forced to shutdown", zap.Error(err))
	}
	stopWorkers()
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("main: audit queue not drained", zap.Error(err))
	}

	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}
	log.Info("main: server stopped gracefully")
	return nil
}
