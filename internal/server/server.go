// Package server exposes the solver over HTTP.
//
// Routes:
//
//	GET  /healthz         liveness probe
//	GET  /v1/version      build information
//	POST /v1/solve        solve an instance given as .alb text or JSON
//	GET  /v1/runs         list archived runs, newest first
//	GET  /v1/runs/{id}    fetch one archived run
//
// Every solve goes through the shared [pipeline.Runner], so the server uses
// the same cache and defaults as the CLI. Cache keys are scoped with a
// "server:" prefix.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/linebalance/pkg/cache"
	"github.com/matzehuels/linebalance/pkg/config"
	"github.com/matzehuels/linebalance/pkg/pipeline"
	"github.com/matzehuels/linebalance/pkg/store"
)

// Server handles solve requests.
type Server struct {
	cfg      config.ServerConfig
	defaults config.SolverConfig
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	validate *validator.Validate
	slots    chan struct{}
}

// New returns a server. A nil store keeps runs in memory. The runner's
// keyer is replaced by a scoped one so server entries never collide with
// CLI entries in a shared cache.
func New(cfg *config.Config, c cache.Cache, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	jobs := max(cfg.Server.Jobs, 1)
	return &Server{
		cfg:      cfg.Server,
		defaults: cfg.Solver,
		runner:   pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "server:"), logger),
		store:    st,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		slots:    make(chan struct{}, jobs),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Post("/solve", s.handleSolve)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the cache and the store.
func (s *Server) Close(ctx context.Context) error {
	return errors.Join(s.runner.Close(), s.store.Close(ctx))
}

// acquire reserves a solve slot, waiting until one is free or ctx ends.
func (s *Server) acquire(ctx context.Context) (release func(), err error) {
	select {
	case s.slots <- struct{}{}:
		return func() { <-s.slots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
