// Package main is the entry point for opscheck. It wires all dependencies
// using samber/do v2, registers the configured probes, serves the health and
// readiness endpoints, and shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/opscheck/internal/adapters/http"
	"github.com/jsamuelsen11/opscheck/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/opscheck/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/opscheck/internal/adapters/probes"

	"github.com/jsamuelsen11/opscheck/internal/app/checks"
	"github.com/jsamuelsen11/opscheck/internal/app/fanout"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/platform/config"
	"github.com/jsamuelsen11/opscheck/internal/platform/health"
	"github.com/jsamuelsen11/opscheck/internal/platform/logging"
	"github.com/jsamuelsen11/opscheck/internal/platform/telemetry"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

// Named DI services, one per check family.
const (
	healthRegistry    = "registry.health"
	readyRegistry     = "registry.ready"
	healthController  = "controller.health"
	readyController   = "controller.ready"
	healthTransitions = "transitions.health"
	readyTransitions  = "transitions.ready"
)

// mirrorPrefix prefixes readiness checks mirrored into the health family.
const mirrorPrefix = "ready."

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph) and bind before any
	// check is registered so a taken port fails startup immediately.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	if err := server.Listen(); err != nil {
		return err
	}

	healthReg := do.MustInvokeNamed[*health.Registry](injector, healthRegistry)
	readyReg := do.MustInvokeNamed[*health.Registry](injector, readyRegistry)

	if cfg.Checks.MirrorReadiness {
		readyReg.AddListener(health.MirrorTo(healthReg, mirrorPrefix))
	}

	// Bulk registration from the probe sets.
	sets := do.MustInvoke[map[check.Family]*probes.Set](injector)
	registerProbes(healthReg, sets[check.FamilyHealth], cfg.Checks.Timeout, logger)
	registerProbes(readyReg, sets[check.FamilyReadiness], cfg.Checks.Timeout, logger)

	// Background evaluation feeds the transition loggers between requests.
	// Each logger consumes its family's RunAll states in order.
	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	var background sync.WaitGroup
	for _, name := range []string{healthTransitions, readyTransitions} {
		transitions := do.MustInvokeNamed[*checks.TransitionLogger](injector, name)
		background.Go(func() { transitions.Listen(pollCtx) })
	}
	background.Go(func() {
		poll(pollCtx, cfg.Checks.PollInterval,
			do.MustInvokeNamed[*checks.Controller](injector, healthController),
			do.MustInvokeNamed[*checks.Controller](injector, readyController),
		)
	})

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Serve()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		stopPolling()
		background.Wait()
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Serve() goroutine to return.
	<-serverErr

	stopPolling()
	background.Wait()

	// Stop scheduled checks, giving in-flight runs the configured grace.
	graceCtx, graceCancel := context.WithTimeout(context.Background(), cfg.Checks.ShutdownGrace)
	defer graceCancel()

	for _, reg := range []*health.Registry{healthReg, readyReg} {
		if err := reg.Shutdown(graceCtx); err != nil {
			logger.Error("check registry shutdown error",
				slog.String("family", reg.Family().String()),
				slog.Any("error", err),
			)
		}
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// registerProbes bulk-registers the immediate probes of set and schedules
// the interval ones.
func registerProbes(reg *health.Registry, set *probes.Set, timeout time.Duration, logger *slog.Logger) {
	added := reg.RegisterAll(set.Checks)
	if added != len(set.Checks) {
		logger.Warn("some checks were already registered",
			slog.String("family", reg.Family().String()),
			slog.Int("requested", len(set.Checks)),
			slog.Int("added", added),
		)
	}

	for name, s := range set.Scheduled {
		if !reg.Schedule(name, s.Check, s.Interval, timeout) {
			logger.Warn("scheduled check not registered",
				slog.String("family", reg.Family().String()),
				slog.String("check", name),
			)
		}
	}
}

// poll evaluates every family on interval until ctx is done. The results are
// discarded; the controllers log failure changes and notify their observers.
func poll(ctx context.Context, interval time.Duration, controllers ...*checks.Controller) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		for _, c := range controllers {
			c.RunAll(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// One pool bounds check concurrency across both families.
	do.Provide(injector, func(_ do.Injector) (*fanout.Pool, error) {
		return fanout.NewPool(cfg.Checks.PoolSize), nil
	})

	// Configured probes, keyed by family, for bulk registration.
	do.Provide(injector, func(i do.Injector) (map[check.Family]*probes.Set, error) {
		pool := do.MustInvoke[*fanout.Pool](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return probes.FromConfig(&cfg.Probes, pool, metrics, logger), nil
	})

	provideFamily(injector, cfg, logger, check.FamilyHealth, healthRegistry, healthController, healthTransitions)
	provideFamily(injector, cfg, logger, check.FamilyReadiness, readyRegistry, readyController, readyTransitions)

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		healthC := do.MustInvokeNamed[*checks.Controller](i, healthController)
		readyC := do.MustInvokeNamed[*checks.Controller](i, readyController)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(
			handlers.NewChecksHandler(healthC, cfg.Checks.NameBudget),
			handlers.NewChecksHandler(readyC, cfg.Checks.NameBudget),
			middleware.Chain(
				middleware.Recovery(logger),
				middleware.RequestID(),
				middleware.OpenTelemetry(metrics),
				middleware.Logging(logger),
				middleware.Timeout(cfg.Server.RequestTimeout),
			),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// provideFamily registers the registry, transition logger, and controller of
// one check family under the given service names.
func provideFamily(
	injector *do.RootScope,
	cfg *config.Config,
	logger *slog.Logger,
	family check.Family,
	registryName, controllerName, transitionsName string,
) {
	do.ProvideNamed(injector, registryName, func(_ do.Injector) (*health.Registry, error) {
		return health.New(health.WithLogger(logger), health.WithFamily(family)), nil
	})

	do.ProvideNamed(injector, transitionsName, func(_ do.Injector) (*checks.TransitionLogger, error) {
		return checks.NewTransitionLogger(logger, family, cfg.Checks.TransitionLogRate), nil
	})

	do.ProvideNamed(injector, controllerName, func(i do.Injector) (*checks.Controller, error) {
		registry := do.MustInvokeNamed[*health.Registry](i, registryName)
		transitions := do.MustInvokeNamed[*checks.TransitionLogger](i, transitionsName)
		pool := do.MustInvoke[*fanout.Pool](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return checks.NewController(registry, pool, checks.ParseGroups("", cfg.Checks.Groups),
			checks.WithLogger(logger),
			checks.WithFamily(family),
			checks.WithTimeout(cfg.Checks.Timeout),
			checks.WithRecorder(metrics),
			checks.WithObserver(transitions.Enqueue),
		), nil
	})
}
