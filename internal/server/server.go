// Package server exposes bstviz sessions over a JSON HTTP API.
//
// Every tree lives in a [session.Session] held by a [session.Store]; handlers
// reach the tree only through the session, so all access to one tree is
// serialized by its lock. Sessions idle for longer than the configured TTL
// are removed by a background cleanup routine.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/tomb.v2"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/session"
)

const (
	// DefaultCleanupInterval is how often expired sessions are purged.
	DefaultCleanupInterval = time.Minute

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// CleanupInterval is the period of the expired-session sweep.
	CleanupInterval time.Duration

	// Render holds canvas and colour defaults for rendered views.
	Render pipeline.Options

	// CacheEntries bounds the rendered-artifact cache. Zero uses
	// cache.DefaultMaxEntries; a negative value disables caching.
	CacheEntries int
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	store  session.Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router

	death tomb.Tomb
}

// New creates a server backed by store.
func New(cfg Config, store session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	runner := pipeline.NewRunner(logger)
	if cfg.CacheEntries < 0 {
		runner.Cache = cache.NullCache{}
	} else {
		runner.Cache = cache.NewMemoryCache(cfg.CacheEntries)
	}
	s := &Server{
		cfg:    cfg,
		store:  store,
		runner: runner,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/trees", func(r chi.Router) {
		r.Post("/", s.handleCreateTree)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetTree)
			r.Delete("/", s.handleDeleteTree)

			r.Post("/values", s.handleInsert)
			r.Get("/values/{value}", s.handleSearch)
			r.Delete("/values/{value}", s.handleDelete)

			r.Get("/traversals/{kind}", s.handleTraverse)
			r.Post("/commands", s.handleCommand)
			r.Post("/view", s.handleView)

			r.Get("/layout", s.handleRender(pipeline.FormatJSON))
			r.Get("/svg", s.handleRender(pipeline.FormatSVG))
			r.Get("/dot", s.handleRender(pipeline.FormatDOT))
			r.Get("/render/{format}", s.handleRenderFormat)
		})
	})
	return r
}

// Run serves on cfg.Addr and sweeps expired sessions until ctx is done,
// then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		select {
		case <-ctx.Done():
			s.death.Kill(nil)
		case <-s.death.Dying():
		}
	}()

	s.death.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	s.death.Go(s.cleanupRoutine)
	s.death.Go(func() error {
		<-s.death.Dying()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return s.death.Wait()
}

// Close stops a running server.
func (s *Server) Close() error {
	s.death.Kill(nil)
	return s.death.Wait()
}

// cleanupRoutine purges expired sessions every CleanupInterval.
func (s *Server) cleanupRoutine() error {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.death.Dying():
			return nil
		case <-ticker.C:
			if err := s.store.Cleanup(context.Background()); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}
