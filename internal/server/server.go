// Package server implements the giv render service.
//
// Routes:
//
//	GET  /healthz                 liveness and build information
//	POST /v1/render?format=svg    render the posted document
//	POST /v1/validate             parse only, report diagnostics and stats
//	POST /v1/hit?x=..&y=..        map a pixel back to the feature drawn there
//
// Layout and render options are read from the query string (scale, hgap,
// vgap, track_gap, panel_gap, style, strict, background, margin, bands,
// title, png_scale, detailed) over the server defaults.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

const (
	defaultMaxBodyBytes = 8 << 20
	defaultTimeout      = 30 * time.Second
	shutdownGrace       = 5 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options requests start from.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBodyBytes caps uploaded documents.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeout bounds the work done for one request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server serves the render API. Create it with New.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	maxBody  int64
	timeout  time.Duration
	logger   *log.Logger
}

// New returns a server that renders through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		maxBody: defaultMaxBodyBytes,
		timeout: defaultTimeout,
		logger:  runner.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.serveHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(forwardOrigin)
		r.Post("/render", s.serveRender)
		r.Post("/validate", s.serveValidate)
		r.Post("/hit", s.serveHit)
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", req.Method, req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Error:   "METHOD_NOT_ALLOWED",
			Message: req.Method + " is not allowed on " + req.URL.Path,
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("render service listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
		s.logger.Info("shutting down render service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
