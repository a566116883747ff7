package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/geocoder89/staffhub/internal/cache"
	"github.com/geocoder89/staffhub/internal/config"
	"github.com/geocoder89/staffhub/internal/db"
	httpx "github.com/geocoder89/staffhub/internal/http"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/redisclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("api exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: "staffhub-api",
		Env:         cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampling,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		c, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = shutdownTracer(c)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	store, err := db.OpenStore(ctx, cfg, prom)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		if err := store.Close(c); err != nil {
			log.Error("store close failed", "err", err)
		}
	}()

	if err := db.EnsureAdminUser(ctx, store.Users, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	var roleCache cache.RoleCache = cache.NewMemoryRoleCache(cfg.RoleCacheTTL)

	if cfg.RedisAddr != "" {
		rdb, err := redisclient.Open(ctx, redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		if err != nil {
			log.Warn("redis unavailable, using in-process role cache", "err", err)
		} else {
			defer rdb.Close()
			roleCache = cache.NewRedisRoleCache(rdb, cfg.RoleCacheTTL)
			log.Info("role cache backed by redis", "addr", cfg.RedisAddr)
		}
	}

	secret := cfg.TokenSecret
	if secret == "" {
		// Validate only allows this in dev/test
		secret = "dev-only-secret"
		log.Warn("ACCESS_TOKEN_SECRET not set, using an insecure development secret")
	}

	router := httpx.NewRouter(httpx.Deps{
		Env:            cfg.Env,
		Store:          store,
		Tokens:         auth.NewManager(secret, cfg.TokenTTL),
		RoleCache:      roleCache,
		Prom:           prom,
		Gatherer:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		StoreTimeout:   cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
