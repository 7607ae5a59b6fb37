package devserver

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/todoapi"
	"github.com/vango-dev/dot/pkg/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithFS serves the app from fsys instead of the configured directory.
func WithFS(fsys fs.FS) Option {
	return func(s *Server) { s.files = fsys }
}

// WithAPI mounts svc instead of a fresh to-do service.
func WithAPI(svc *todoapi.Service) Option {
	return func(s *Server) { s.api = svc }
}

// WithRegistry collects metrics into reg. Default: a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracerProvider sets the provider for server spans. Default: the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) { s.tracerProvider = tp }
}

// Server is the application's HTTP front.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	prefix string
	index  string
	files  fs.FS

	api            *todoapi.Service
	registry       *prometheus.Registry
	tracerProvider trace.TracerProvider

	handler http.Handler
}

// New builds the server and its routes. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.With("component", "devserver"),
		prefix: cfg.Static.Prefix,
		index:  cfg.Static.Index,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.files == nil {
		s.files = os.DirFS(cfg.StaticPath())
	}
	if s.api == nil && cfg.API.Enabled {
		s.api = todoapi.New(logger)
	}
	if s.registry == nil && cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(collectors.NewGoCollector())
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	if s.cfg.Tracing.Enabled {
		opts := []middleware.TracingOption{middleware.WithTracerName(s.cfg.Tracing.ServiceName)}
		if s.tracerProvider != nil {
			opts = append(opts, middleware.WithTracerProvider(s.tracerProvider))
		}
		r.Use(middleware.Tracing(opts...))
	}
	if s.registry != nil {
		r.Use(middleware.Metrics(middleware.WithRegistry(s.registry)))
		r.Method(http.MethodGet, s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	if s.api != nil {
		r.Mount("/api", s.api.Routes())
	}

	if s.prefix != "/" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.prefix, http.StatusFound)
		})
	}
	if bare := strings.TrimSuffix(s.prefix, "/"); bare != "" {
		r.Get(bare, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.prefix, http.StatusMovedPermanently)
		})
	}
	r.Get(s.prefix+"*", s.serveApp)
	r.Head(s.prefix+"*", s.serveApp)

	return r
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// API returns the mounted to-do service, or nil when the API is disabled.
func (s *Server) API() *todoapi.Service { return s.api }

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.api != nil {
		srv.RegisterOnShutdown(func() { _ = s.api.Close() })
	}

	s.logger.Info("server listening",
		"addr", ln.Addr().String(),
		"app", "http://"+ln.Addr().String()+s.prefix)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) shutdownTimeout() time.Duration {
	d, err := time.ParseDuration(s.cfg.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return defaultShutdownTimeout
	}
	return d
}
