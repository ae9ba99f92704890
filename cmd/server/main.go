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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"georef/internal/geo"
	geometrics "georef/internal/geo/metrics"
	httpapi "georef/internal/http"
	"georef/internal/platform/config"
	"georef/internal/platform/database"
	"georef/internal/platform/health"
	"georef/internal/platform/httpserver"
	"georef/internal/platform/logger"
	"georef/internal/platform/metrics"
	"georef/internal/platform/redis"
	ratelimitmetrics "georef/internal/ratelimit/metrics"
	ratelimit "georef/internal/ratelimit/middleware"
	"georef/internal/ratelimit/store/bucket"
	"georef/internal/registry"
	"georef/pkg/platform/circuit"
	"georef/pkg/platform/middleware/metadata"
)

const shutdownTimeout = 10 * time.Second

// main loads configuration and hands off to run. Geographic lookups live in
// internal/geo; this file only assembles them.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "georef"),
	)

	c := registry.New()
	c.RegisterInstance(geo.TokenDataSource, db)
	c.RegisterInstance(geo.TokenLogger, log)
	c.RegisterInstance(geo.TokenMetrics, geometrics.New(reg))
	geo.Wire(c)
	log.Debug("registry wired", "tokens", c.Tokens())

	checks := []health.Check{{Name: "database", Probe: db.PingContext}}
	var buckets ratelimit.BucketStore = bucket.NewInMemoryBucketStore()
	limiterOpts := []ratelimit.Option{
		ratelimit.WithDisabled(!cfg.RateLimit.Enabled),
		ratelimit.WithMetrics(ratelimitmetrics.New(reg)),
	}
	if redisClient != nil {
		checks = append(checks, health.Check{Name: "redis", Probe: redisClient.Health})
		buckets = bucket.NewRedisBucketStore(redisClient.Client)
		limiterOpts = append(limiterOpts,
			ratelimit.WithFallback(bucket.NewInMemoryBucketStore(), circuit.New("redis")))
	}
	limiter := ratelimit.New(buckets, cfg.RateLimit.Requests, cfg.RateLimit.Window, log, limiterOpts...)

	router, err := httpapi.NewRouter(httpapi.Deps{
		Resolver:    c,
		Logger:      log,
		Metrics:     metrics.New(reg),
		Gatherer:    reg,
		RateLimiter: limiter,
		Checks:      checks,
		Proxies:     proxies,
	})
	if err != nil {
		return fmt.Errorf("wire routes: %w", err)
	}

	srv := httpserver.New(cfg.Addr, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting georef", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
