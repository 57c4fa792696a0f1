package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"prdashboard/internal/app/config"
	httpapi "prdashboard/internal/app/http"
	"prdashboard/internal/app/http/handler"
	"prdashboard/internal/domain"
	"prdashboard/internal/domain/overview"
	"prdashboard/internal/domain/pr"
	"prdashboard/internal/infrastructure/async"
	"prdashboard/internal/infrastructure/cache"
	"prdashboard/internal/infrastructure/db/pg"
	"prdashboard/internal/infrastructure/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	tiers := []cache.Backend{cache.NewMemory(cfg.Cache.TTL)}
	if cfg.Cache.RedisAddr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.TTL, log)
		if err != nil {
			log.Fatal("redis connect error", zap.Error(err))
		}
		defer rdb.Close()
		tiers = append(tiers, rdb)
	}
	tables := cache.NewManager(log, tiers...)

	pool := async.NewWorkerPool(ctx, cfg.Cache.WarmerWorkers, 64, cfg.Cache.QueryTimeout, log)
	defer pool.Shutdown()

	warmer := async.NewWarmer(pool, tables, log)
	warmer.Register(overview.AssigneeQuery, pg.NewAssigneeQuery(db).Table)

	eventBus := async.NewAsyncEventBus(ctx, 4, log)
	defer eventBus.Close()
	eventBus.Subscribe(warmer.HandleEvent)

	uow := pg.NewTxManager(db, cfg.TxTimeout)
	prRepo := pg.NewPRRepository(db)

	clock := domain.SystemClock{}
	prSvc := pr.NewService(uow, prRepo, eventBus, clock)
	overviewSvc := overview.NewService(tables, warmer, clock, overview.Options{
		PollInterval: cfg.Cache.PollInterval,
		PollTimeout:  cfg.Cache.PollTimeout,
	}, log)

	h := handler.New(prSvc, overviewSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Cache.PollTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
