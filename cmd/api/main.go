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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/angelmondragon/ecotech-backend/api/routes"
	"github.com/angelmondragon/ecotech-backend/internal/analytics"
	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/entries"
	"github.com/angelmondragon/ecotech-backend/internal/locations"
	"github.com/angelmondragon/ecotech-backend/internal/users"
	"github.com/angelmondragon/ecotech-backend/pkg/config"
	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/metrics"
	"github.com/angelmondragon/ecotech-backend/pkg/migrate"
	"github.com/angelmondragon/ecotech-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Static:      map[string]string{"env": cfg.App.Env, "instance": id},
		Hooks:       []zerolog.Hook{metrics.NewLogHook(reg)},
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis disabled, idempotent replays are off")
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	locationsRepo := locations.NewRepository(conn)
	entriesRepo := entries.NewRepository(conn)
	analyticsRepo := analytics.NewRepository(conn)

	userService, err := users.NewService(usersRepo, analyticsRepo, dbClient)
	requireService(logg, "users", err)
	locationService, err := locations.NewService(locationsRepo, dbClient)
	requireService(logg, "locations", err)
	guard, err := entries.NewGuard(usersRepo, locationsRepo)
	requireService(logg, "reference guard", err)
	entryService, err := entries.NewService(entriesRepo, guard)
	requireService(logg, "entries", err)
	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Entries:   entriesRepo,
		Users:     usersRepo,
		Locations: locationsRepo,
		Store:     analyticsRepo,
		Logger:    logg,
	})
	requireService(logg, "analytics", err)
	maintainer, err := cascade.NewMaintainer(cascade.Params{
		Users:     usersRepo,
		Entries:   entriesRepo,
		Analytics: analyticsRepo,
		Locations: locationsRepo,
		DB:        dbClient,
		Logger:    logg,
	})
	requireService(logg, "cascade", err)

	httpMetrics := metrics.NewHTTPMetrics(reg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithField(ctx, "addr", addr)
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, reg, httpMetrics,
			userService, locationService, entryService, analyticsService, maintainer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
		logg.Info(ctx, "api server shutting down gracefully")
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
