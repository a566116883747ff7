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

	"github.com/geocoder89/staffhub/internal/config"
	"github.com/geocoder89/staffhub/internal/db"
	"github.com/geocoder89/staffhub/internal/ledger"
	"github.com/geocoder89/staffhub/internal/notifications"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("ledger exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := observability.NewLogger(cfg.Env).With("component", "ledger")
	slog.SetDefault(log)

	if cfg.StoreDriver == config.DriverMemory {
		return errors.New("the ledger worker needs a shared store; set STORE_DRIVER to postgres or mongo")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: "staffhub-ledger",
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
	prom := observability.NewProm(reg)

	store, err := db.OpenStore(ctx, cfg, prom)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = store.Close(c)
	}()

	w := ledger.New(ledger.Config{
		PollInterval: cfg.LedgerPollInterval,
		OpTimeout:    cfg.RequestTimeout,
	}, store.Payroll, store.Payments, prom, log).WithNotifier(
		notifications.NewProtectedNotifier(notifications.NewLogNotifier(log), notifications.ProtectedNotifierConfig{}),
	)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", w.HealthHandler(store.Ping))

	healthSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.LedgerHealthPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("ledger health server starting", "port", cfg.LedgerHealthPort)

		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ledger health server failed", "err", err)
		}
	}()

	log.Info("ledger worker started", "poll_interval", cfg.LedgerPollInterval.String(), "store", cfg.StoreDriver)

	if err := w.Run(ctx); err != nil {
		log.Error("ledger worker stopped with error", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()
	_ = healthSrv.Shutdown(shutdownCtx)

	log.Info("ledger shutdown complete")
	return nil
}
