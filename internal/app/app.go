package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/broadcast"
	"github.com/GlebRadaev/duelhub/internal/catalog"
	"github.com/GlebRadaev/duelhub/internal/config"
	"github.com/GlebRadaev/duelhub/internal/handlers"
	"github.com/GlebRadaev/duelhub/internal/pg"
	"github.com/GlebRadaev/duelhub/internal/reconciler"
	"github.com/GlebRadaev/duelhub/internal/repo"
	"github.com/GlebRadaev/duelhub/internal/scorecache"
	"github.com/GlebRadaev/duelhub/internal/service"
	"github.com/GlebRadaev/duelhub/pkg/auth"
	"github.com/GlebRadaev/duelhub/pkg/clients"
	"github.com/GlebRadaev/duelhub/pkg/logger"
	"github.com/GlebRadaev/duelhub/pkg/tracing"
)

const serviceName = "duelhub"

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

// check is a named dependency probe served by /healthz.
type check struct {
	name  string
	probe func(ctx context.Context) error
}

type Application struct {
	cfg        *config.Config
	pool       *pgxpool.Pool
	redis      *redis.Client
	emitter    *broadcast.Emitter
	reconciler *reconciler.Service
	server     *http.Server
	checks     []check
	traces     func(context.Context) error

	errCh chan error
	wg    sync.WaitGroup
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}
	a.cfg = cfg

	if err := logger.InitLogger(logger.Options{Level: cfg.LogLvl, Format: cfg.LogFormat, Service: serviceName}); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	a.traces, err = tracing.Init(ctx, tracing.Options{
		Service:     serviceName,
		Endpoint:    cfg.TraceEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("can't init tracing: %w", err)
	}

	if a.pool, err = connectPostgres(ctx, cfg.Database); err != nil {
		zap.L().Error("postgres connection failed", zap.Error(err))
		return fmt.Errorf("can't connect to postgres: %w", err)
	}
	if _, err := pg.Migrate(ctx, a.pool); err != nil {
		a.pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}

	if a.redis, err = connectRedis(ctx, cfg); err != nil {
		zap.L().Error("redis connection failed", zap.Error(err))
		a.pool.Close()
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	a.checks = []check{
		{name: "postgres", probe: a.pool.Ping},
		{name: "redis", probe: func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }},
	}

	a.emitter = broadcast.NewEmitter(broadcast.NewRedisPublisher(a.redis), broadcast.NewWorkerPool(cfg.BroadcastWorkers))
	repos := repo.New(pg.New(a.pool), pg.NewTXManager(a.pool))
	services := service.New(repos, service.Deps{
		Cache:    scorecache.New(a.redis),
		Emitter:  a.emitter,
		Catalog:  catalog.New(cfg.GiftCatalog, clients.NewHTTPClient(0, serviceName)),
		ScoreTTL: cfg.ScoreTTL,
	})
	a.reconciler = reconciler.New(repos.SessionRepo, services.ScoreService, cfg.ReconcileInterval)

	router := chi.NewRouter()
	handlers.New(services, auth.NewHMACProvider(cfg.JWTSecret, cfg.JWTIssuer)).InitRoutes(router)
	router.Get("/healthz", a.health)
	a.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.goServe()
	a.goReconcile(ctx)
	a.goShutdown(ctx)

	zap.L().Info("all systems started successfully", zap.String("address", cfg.Address))
	return nil
}

func connectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (a *Application) goServe() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()
}

func (a *Application) goReconcile(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.reconciler.Start(ctx)
	}()
}

// goShutdown stops intake first, then drains pending broadcasts, and only
// then closes the stores they depend on.
func (a *Application) goShutdown(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(sCtx); err != nil {
			zap.L().Warn("http server shutdown incomplete", zap.Error(err))
		}

		a.emitter.Close()
		if err := a.redis.Close(); err != nil {
			zap.L().Warn("redis close failed", zap.Error(err))
		}
		a.pool.Close()

		if err := a.traces(sCtx); err != nil {
			zap.L().Warn("trace flush failed", zap.Error(err))
		}
	}()
}

func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	for _, c := range a.checks {
		if err := c.probe(ctx); err != nil {
			zap.L().Warn("health check failed", zap.String("dependency", c.name), zap.Error(err))
			http.Error(w, c.name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
