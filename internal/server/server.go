// Package server exposes a boost predictor over an HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/internal/config"
	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/spline"
)

// Server serves boost predictions from one artifact store.
type Server struct {
	store      *artifact.Store
	cfg        config.ServerConfig
	policy     params.Policy
	defaultExt spline.Extrapolation
	logger     *slog.Logger
	router     chi.Router
}

// Option configures a Server.
type Option = options.Option[*Server]

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// WithRangePolicy sets the range policy applied to every request.
func WithRangePolicy(policy params.Policy) Option {
	return options.NoError(func(s *Server) {
		s.policy = policy
	})
}

// WithDefaultExtrapolation sets the policy used when a request names none.
func WithDefaultExtrapolation(ext spline.Extrapolation) Option {
	return options.New(func(s *Server) error {
		if !ext.Valid() {
			return fmt.Errorf("invalid default extrapolation: %d", ext)
		}
		s.defaultExt = ext
		return nil
	})
}

// New creates a server over store.
func New(store *artifact.Store, cfg config.ServerConfig, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("server needs an artifact store")
	}

	s := &Server{
		store:      store,
		cfg:        cfg,
		policy:     params.PolicyStrict,
		defaultExt: spline.Default,
		logger:     slog.Default(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}
	s.router = s.routes()

	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(vr chi.Router) {
		vr.Post("/boost", s.handleBoost)
		vr.Get("/grid", s.handleGrid)
		vr.Get("/bounds", s.handleBounds)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
