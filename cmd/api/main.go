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

	mem "farm-records/internal/adapters/storage/memory"
	pg "farm-records/internal/adapters/storage/postgres"
	"farm-records/internal/adapters/storage/sqlite"
	"farm-records/internal/domain/accounts"
	"farm-records/internal/domain/reminders"
	"farm-records/internal/middleware"
	"farm-records/internal/platform/config"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
	"farm-records/internal/router"

	"github.com/robfig/cron/v3"
)

const housekeepingEvery = "@every 5m"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if cfg.DevSecret() {
		log.Warn("using default SESSION_SECRET, set one outside dev", nil)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("using postgres for animals, sales and users", nil)
	}

	sessions := accounts.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	limiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, log)
	sched := reminders.NewScheduler(store, log, cfg.ReminderThreshold)

	handler, err := router.NewRouter(ctx, router.Options{
		Config:       cfg,
		Log:          log,
		Store:        store,
		DB:           db,
		Sessions:     sessions,
		LoginLimiter: limiter,
		Scheduler:    sched,
	})
	if err != nil {
		return err
	}

	runner := reminders.NewRunner(sched, cfg.ReminderPoll, log)
	if err := runner.Start(ctx); err != nil {
		return err
	}

	// Sesiones vencidas y limiters ociosos.
	housekeeping := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger)))
	if _, err := housekeeping.AddFunc(housekeepingEvery, func() {
		if n := sessions.Sweep(); n > 0 {
			log.Debug("expired sessions swept", map[string]any{"count": n})
		}
		limiter.Cleanup(10 * time.Minute)
	}); err != nil {
		return err
	}
	housekeeping.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("starting server", map[string]any{"addr": srv.Addr, "store": cfg.StorePath})

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-housekeeping.Stop().Done()
	runner.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	log.Info("server stopped", nil)
	return serveErr
}

// openStore: ":memory:" => kv en memoria, si no SQLite en el path dado.
func openStore(path string) (kv.Store, func() error, error) {
	if path == ":memory:" {
		return mem.NewKV(), func() error { return nil }, nil
	}
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
