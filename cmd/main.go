package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/aav/internal/adapters/http/api"
	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/config"
	"github.com/okian/aav/internal/domain/engine"
	"github.com/okian/aav/pkg/logger"
	"github.com/okian/aav/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("aav: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A .env file is optional; the environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.InitWithFormat(cfg.LogFormat); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := registerRuntimeCollectors(); err != nil {
		return err
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	srv := newHTTPServer(ctx, cfg, svc, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// registerRuntimeCollectors adds Go runtime and process metrics to the
// service registry. Repeated calls are harmless.
func registerRuntimeCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := metrics.GetRegistry().Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return fmt.Errorf("register collector: %w", err)
			}
		}
	}
	return nil
}

// newService builds the valuation service from cfg. League tables are read
// from cfg.LeagueTablesFile when set.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	vc, err := cfg.ValuationContext(ctx)
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(log),
		service.WithValuationContext(vc),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithPoolConcurrency(cfg.PoolConcurrency),
		service.WithEngineOptions(engine.WithMaxSecurityAdjustment(cfg.MaxSecurityAdjustment)),
	), nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) *http.Server {
	handler := api.NewServer(svc,
		api.WithMaxBoardLimit(cfg.MaxBoardLimit),
		api.WithMaxPoolSize(cfg.MaxPoolSize),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTrustedProxy(cfg.TrustProxy),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithCORSOrigins(cfg.CORSOrigins...),
		api.WithLogger(log.Named("http")),
	).Routes(ctx)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startServiceMetricsUpdater refreshes the queue gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats pushes the queue length to the gauge as a side effect.
			_ = svc.GetStats()
		}
	}
}
