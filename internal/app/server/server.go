package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"

	"checador/internal/domain/attendance"
	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/domain/dashboard"
	"checador/internal/domain/employees"
	"checador/internal/domain/profile"
	"checador/internal/domain/schedules"
	"checador/internal/platform/config"
	"checador/internal/platform/db"
	"checador/internal/platform/db/postgres"
	"checador/internal/platform/logger"
	"checador/internal/platform/metrics"
	"checador/internal/platform/redis"
	"checador/internal/transport/http/api"
	attendancehandler "checador/internal/transport/http/handlers/attendance"
	authhandler "checador/internal/transport/http/handlers/auth"
	dashboardhandler "checador/internal/transport/http/handlers/dashboard"
	employeeshandler "checador/internal/transport/http/handlers/employees"
	profilehandler "checador/internal/transport/http/handlers/profile"
	scheduleshandler "checador/internal/transport/http/handlers/schedules"
	"checador/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Router http.Handler
	Log    *logger.Logger
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouteRegistrar is implemented by every handler package.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type RouterDeps struct {
	Config   config.Config
	Log      *logger.Logger
	Verifier middleware.TokenVerifier
	Ready    Pinger
	Metrics  *metrics.Collector
	// Public routes are mounted under /api without authentication.
	Public []RouteRegistrar
	// Protected routes are mounted under /api behind the bearer token check.
	Protected []RouteRegistrar
}

// New connects to the database (and redis when configured) and wires every workflow.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	app := &App{Config: cfg, DB: pool, Log: log}

	var counter middleware.Counter
	if cfg.RedisURL != "" {
		client, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		app.Redis = client
		counter = client
	}

	api.Log = log
	tx := postgres.NewTxManager(pool)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(auth.NewStore(pool), tokens)

	scheduleStore := schedules.NewStore(pool)
	scheduleService := schedules.NewService(scheduleStore)
	employeeStore := employees.NewStore(pool)
	employeeService := employees.NewService(employeeStore, scheduleStore, tx)
	attendanceStore := attendance.NewStore(pool)
	attendanceService := attendance.NewService(attendanceStore, cfg.Location())
	profileService := profile.NewService(profile.NewStore(pool), attendanceStore, employeeStore)
	dashboardService := dashboard.NewService(dashboard.NewStore(pool), employeeService, attendanceService)
	auditService := audit.New(pool, log)

	loginLimits := []func(http.Handler) http.Handler{
		middleware.RateLimit("login_ip", cfg.LoginRateLimit, cfg.LoginRateWindow,
			middleware.WithCounter(counter), middleware.WithLogger(log)),
		middleware.RateLimit("login_user", cfg.LoginRateLimit, cfg.LoginRateWindow,
			middleware.WithKeyFunc(middleware.JSONFieldOrIPKey("username")),
			middleware.WithCounter(counter), middleware.WithLogger(log)),
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	app.Router = NewRouter(RouterDeps{
		Config:   cfg,
		Log:      log,
		Verifier: authService,
		Ready:    poolPinger{pool: pool, redis: app.Redis},
		Metrics:  collector,
		Public:   []RouteRegistrar{authhandler.NewHandler(authService, loginLimits...)},
		Protected: []RouteRegistrar{
			employeeshandler.NewHandler(employeeService, auditService),
			attendancehandler.NewHandler(attendanceService, auditService),
			scheduleshandler.NewHandler(scheduleService, auditService),
			profilehandler.NewHandler(profileService),
			dashboardhandler.NewHandler(dashboardService, auditService),
		},
	})
	return app, nil
}

func NewRouter(deps RouterDeps) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.SecureHeaders(deps.Config.IsProduction()))
	router.Use(middleware.CORS(deps.Config.CORSOrigins))
	router.Use(middleware.BodyLimit(deps.Config.MaxBodyBytes))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "route_not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if deps.Ready != nil {
			if err := deps.Ready.Ping(ctx); err != nil {
				deps.Log.Error(ctx, "readiness.failed", err)
				api.Fail(w, http.StatusServiceUnavailable, "not_ready", "dependencies not ready", middleware.GetRequestID(r.Context()))
				return
			}
		}
		api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
	})
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		for _, h := range deps.Public {
			h.RegisterRoutes(r)
		}
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(deps.Verifier, deps.Log))
			for _, h := range deps.Protected {
				h.RegisterRoutes(r)
			}
		})
	})

	return router
}

type poolPinger struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func (p poolPinger) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if p.redis != nil {
		if err := p.redis.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info(ctx, "server listening on "+a.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	a.Log.Info(shutdownCtx, "server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Close releases the database pool and the redis client.
func (a *App) Close() error {
	var err error
	if a.Redis != nil {
		err = multierr.Append(err, a.Redis.Close())
	}
	if a.DB != nil {
		a.DB.Close()
	}
	return err
}
