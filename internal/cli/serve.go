package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/clui"
	httpAdapter "github.com/aretw0/clui/pkg/adapters/http"
	redisAdapter "github.com/aretw0/clui/pkg/adapters/redis"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/observability"
	"github.com/aretw0/clui/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Path  string
	Addr  string
	Debug bool

	// RedisAddr enables event publishing when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	// Trace receives one line per transition when set.
	Trace io.Writer
}

// service bundles what the server needs: the engine, the guarded root session
// and the metrics registry.
type service struct {
	engine    *clui.Engine
	guard     *session.Guard
	registry  *prometheus.Registry
	publisher *redisAdapter.Publisher
	logger    *slog.Logger
}

func newService(opts ServeOptions, logger *slog.Logger) (*service, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	engOpts := []clui.Option{
		clui.WithLogger(logger),
		clui.WithObserver(metrics.Observe),
		clui.WithObserver(observability.LogObserver(logger)),
	}
	if opts.Trace != nil {
		engOpts = append(engOpts, clui.WithObserver(func(e domain.Event) {
			fmt.Fprintf(opts.Trace, "[%s] %s\n", e.Timestamp.Format(time.TimeOnly), observability.Describe(e))
		}))
	}

	var pub *redisAdapter.Publisher
	if opts.RedisAddr != "" {
		pubOpts := []redisAdapter.Option{redisAdapter.WithLogger(logger)}
		if opts.RedisChannel != "" {
			pubOpts = append(pubOpts, redisAdapter.WithChannel(opts.RedisChannel))
		}
		pub = redisAdapter.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, pubOpts...)
		engOpts = append(engOpts, clui.WithPublisher(pub))
	}

	eng, err := clui.New(opts.Path, engOpts...)
	if err != nil {
		if pub != nil {
			_ = pub.Close()
		}
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return &service{
		engine:    eng,
		guard:     session.NewGuard(eng.Session()),
		registry:  reg,
		publisher: pub,
		logger:    logger,
	}, nil
}

// Handler mounts the session API next to /metrics.
func (s *service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Mount("/", httpAdapter.NewHandler(s.guard,
		httpAdapter.WithStepBuilder(s.engine.BuildSteps),
		httpAdapter.WithLogger(s.logger),
	))
	return r
}

func (s *service) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}

// Serve runs the HTTP control surface until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.Debug)
	if opts.Trace == nil {
		opts.Trace = os.Stdout
	}

	svc, err := newService(opts, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("Starting clui server on %s\n", srv.Addr)
		fmt.Printf("Serving script: %s\n", svc.engine.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		fmt.Println("\nStarting shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		fmt.Println("clui server stopped gracefully")
		return nil
	}
}
