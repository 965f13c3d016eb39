package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "farm-records/docs"

	"farm-records/internal/adapters/farmdata/local"
	"farm-records/internal/adapters/farmdata/remote"
	mem "farm-records/internal/adapters/storage/memory"
	pg "farm-records/internal/adapters/storage/postgres"
	"farm-records/internal/domain/accounts"
	"farm-records/internal/domain/livestock"
	"farm-records/internal/domain/records"
	"farm-records/internal/domain/reminders"
	"farm-records/internal/domain/reports"
	"farm-records/internal/domain/subscriptions"
	"farm-records/internal/middleware"
	"farm-records/internal/platform/config"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/farmdata"
	"farm-records/internal/ports/kv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Store guarda las colecciones locales. nil => kv en memoria.
	Store kv.Store

	// Opcional: si viene, animales/ventas/usuarios van a Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: fuente de animales/ventas para los agregados.
	// nil => remoto si Config.FarmDataURL está definido, si no el módulo livestock local.
	FarmData farmdata.Source

	// Los siguientes se crean desde Config si vienen nil; main los pasa
	// para poder barrer sesiones, limpiar limiters y correr el runner.
	Sessions     *accounts.SessionManager
	LoginLimiter *middleware.RateLimiter
	Scheduler    *reminders.Scheduler
}

// NewRouter arma los servicios por módulo, siembra el usuario por defecto y monta las rutas.
func NewRouter(ctx context.Context, opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	store := opts.Store
	if store == nil {
		store = mem.NewKV()
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = accounts.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	}
	limiter := opts.LoginLimiter
	if limiter == nil && cfg.LoginRate > 0 {
		limiter = middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, log)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = reminders.NewScheduler(store, log, cfg.ReminderThreshold)
	}

	var (
		animalRepo livestock.AnimalRepository
		saleRepo   livestock.SaleRepository
		userRepo   accounts.UserRepository
	)
	if opts.DB != nil {
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		saleRepo = pg.NewSalesRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
	} else {
		animalRepo = mem.NewAnimalRepo()
		saleRepo = mem.NewSaleRepo()
		userRepo = mem.NewUserRepo()
	}

	// Services por módulo
	recordStore := records.NewStore(store, log)
	recordsSvc := records.NewService(recordStore, log)
	livestockSvc := livestock.NewService(animalRepo, saleRepo, log)
	accountsSvc := accounts.NewService(userRepo, sessions, log)
	subsSvc := subscriptions.NewService(store, log, cfg.PaymentDelay)

	source := opts.FarmData
	if source == nil {
		if cfg.FarmDataURL != "" {
			rs, err := remote.New(remote.Config{
				BaseURL: cfg.FarmDataURL,
				APIKey:  cfg.FarmDataAPIKey,
				Timeout: cfg.FarmDataTimeout,
			})
			if err != nil {
				return nil, fmt.Errorf("farmdata remote: %w", err)
			}
			source = rs
		} else {
			source = local.New(livestockSvc)
		}
	}
	reportsSvc := reports.NewService(source, recordStore, log)

	if err := accountsSvc.EnsureDefaultUser(ctx); err != nil {
		return nil, fmt.Errorf("seed default user: %w", err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.SessionContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var loginLimit func(http.Handler) http.Handler
	if limiter != nil {
		loginLimit = limiter.Handler
	}

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, loginLimit)
	records.RegisterRoutes(r, recordsSvc)
	livestock.RegisterRoutes(r, livestockSvc)
	reports.RegisterRoutes(r, reportsSvc)
	subscriptions.RegisterRoutes(r, subsSvc)
	reminders.RegisterRoutes(r, sched)

	return r, nil
}
