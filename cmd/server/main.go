// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"gorm.io/gorm"

	adapthttp "github.com/jsamuelsen11/taskboard/internal/adapters/http"
	"github.com/jsamuelsen11/taskboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskboard/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/taskboard/internal/adapters/notify"
	"github.com/jsamuelsen11/taskboard/internal/adapters/storage/gormstore"
	"github.com/jsamuelsen11/taskboard/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/taskboard/internal/app"
	"github.com/jsamuelsen11/taskboard/internal/platform/auth"
	"github.com/jsamuelsen11/taskboard/internal/platform/config"
	"github.com/jsamuelsen11/taskboard/internal/platform/health"
	"github.com/jsamuelsen11/taskboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskboard/internal/platform/logging"
	"github.com/jsamuelsen11/taskboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskboard/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("TASKBOARD_PROFILE")
	if profile == "" {
		return errors.New("TASKBOARD_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
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

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	if cfg.Storage.Driver == "sqlite" {
		db := do.MustInvoke[*gorm.DB](injector)
		registry.Register(gormstore.NewHealthChecker(db))
	} else {
		registry.Register(memory.NewHealthChecker())
	}
	if cfg.Notifier.Enabled {
		registry.Register(do.MustInvoke[*httpclient.Client](injector))
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
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

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
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

// registerStorage wires the repository implementations selected by the
// storage driver. The GORM store owns a shared *gorm.DB; the memory store
// needs no shared state.
func registerStorage(injector *do.RootScope, cfg *config.Config) {
	if cfg.Storage.Driver == "sqlite" {
		do.Provide(injector, func(_ do.Injector) (*gorm.DB, error) {
			return gormstore.Open(&cfg.Storage)
		})
		do.Provide(injector, func(i do.Injector) (ports.TaskListRepository, error) {
			return gormstore.NewTaskListRepository(do.MustInvoke[*gorm.DB](i)), nil
		})
		do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
			return gormstore.NewTaskRepository(do.MustInvoke[*gorm.DB](i)), nil
		})
		do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
			return gormstore.NewUserRepository(do.MustInvoke[*gorm.DB](i)), nil
		})
		return
	}

	do.Provide(injector, func(_ do.Injector) (ports.TaskListRepository, error) {
		return memory.NewTaskListRepository(), nil
	})
	do.Provide(injector, func(_ do.Injector) (ports.TaskRepository, error) {
		return memory.NewTaskRepository(), nil
	})
	do.Provide(injector, func(_ do.Injector) (ports.UserRepository, error) {
		return memory.NewUserRepository(), nil
	})
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	registerStorage(injector, cfg)

	do.Provide(injector, func(_ do.Injector) (*auth.TokenManager, error) {
		return auth.NewTokenManager(&cfg.Auth), nil
	})

	do.Provide(injector, func(_ do.Injector) (*auth.PasswordHasher, error) {
		return auth.NewPasswordHasher(), nil
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "notifier", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Notifier, error) {
		if !cfg.Notifier.Enabled {
			return notify.NewNoopNotifier(), nil
		}
		client := do.MustInvoke[*httpclient.Client](i)
		return notify.NewWebhookNotifier(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskListService, error) {
		lists := do.MustInvoke[ports.TaskListRepository](i)
		tasks := do.MustInvoke[ports.TaskRepository](i)
		return app.NewTaskListService(lists, tasks, logger, time.Now), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		tasks := do.MustInvoke[ports.TaskRepository](i)
		lists := do.MustInvoke[ports.TaskListRepository](i)
		users := do.MustInvoke[ports.UserRepository](i)
		notifier := do.MustInvoke[ports.Notifier](i)
		return app.NewTaskService(tasks, lists, users, notifier, logger, time.Now), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		users := do.MustInvoke[ports.UserRepository](i)
		hasher := do.MustInvoke[*auth.PasswordHasher](i)
		return app.NewUserService(users, hasher, logger, time.Now), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AuthService, error) {
		users := do.MustInvoke[ports.UserRepository](i)
		hasher := do.MustInvoke[*auth.PasswordHasher](i)
		tokens := do.MustInvoke[*auth.TokenManager](i)
		return app.NewAuthService(users, hasher, tokens, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskListHandler, error) {
		lists := do.MustInvoke[ports.TaskListService](i)
		tasks := do.MustInvoke[ports.TaskService](i)
		return handlers.NewTaskListHandler(lists, tasks), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		svc := do.MustInvoke[ports.TaskService](i)
		return handlers.NewTaskHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		users := do.MustInvoke[ports.UserService](i)
		tasks := do.MustInvoke[ports.TaskService](i)
		return handlers.NewUserHandler(users, tasks), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		svc := do.MustInvoke[ports.AuthService](i)
		return handlers.NewAuthHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		taskListH := do.MustInvoke[*handlers.TaskListHandler](i)
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		userH := do.MustInvoke[*handlers.UserHandler](i)
		authH := do.MustInvoke[*handlers.AuthHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		tokens := do.MustInvoke[*auth.TokenManager](i)

		return adapthttp.NewRouter(taskListH, taskH, userH, authH, healthH,
			middleware.Auth(tokens),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
