// Package server serves the computed records over HTTP. The record book is
// rebuilt from the source in full on every refresh and swapped in atomically;
// a failed refresh leaves the previous book in place.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/logger"
	"github.com/dbsmedya/swimrecords/internal/report"
	"github.com/dbsmedya/swimrecords/internal/source"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// snapshot is one computed book and the dataset it came from.
type snapshot struct {
	inputs   report.Inputs
	loadedAt time.Time
}

// Server is the read API.
type Server struct {
	router   *chi.Mux
	addr     string
	interval time.Duration
	source   source.Source
	logger   *logger.Logger

	current   atomic.Pointer[snapshot]
	refreshMu sync.Mutex
}

// New creates a server reading from src.
func New(cfg config.ServerConfig, src source.Source, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		addr:     cfg.Addr,
		interval: time.Duration(cfg.RefreshIntervalSeconds) * time.Second,
		source:   src,
		logger:   log,
	}
	router.Use(s.requestLogger)

	router.Get("/health", s.health)
	router.Post("/refresh", s.refresh)
	router.Group(func(r chi.Router) {
		r.Use(s.requireBook)
		r.Get("/records", s.records)
		r.Get("/annotations", s.annotations)
		r.Get("/performances/{id}", s.performance)
		r.Get("/meets/{id}", s.meet)
		r.Get("/swimmers/{name}", s.swimmer)
		r.Get("/swimmers/{name}/bests", s.swimmerBests)
	})

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Refresh loads the dataset and replaces the book. Concurrent calls are
// serialized. On failure the previous book keeps serving.
func (s *Server) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	ds, err := s.source.Load(ctx)
	if err != nil {
		s.logger.WithSource(s.source.Name()).Errorw("Refresh failed, keeping previous records", "error", err)
		return err
	}

	snap := &snapshot{inputs: report.NewInputs(ds), loadedAt: time.Now()}
	s.current.Store(snap)
	s.logger.WithSource(s.source.Name()).Infof("Records refreshed: %d performances, %d lineages, load took %s",
		len(ds.Performances), snap.inputs.Book.School.Len(), ds.Stats.Duration)
	return nil
}

// Run loads the first book, refreshes it on the configured interval and
// serves until ctx is canceled. A failed first load is logged and retried on
// the next tick rather than stopping the server.
func (s *Server) Run(ctx context.Context) error {
	_ = s.Refresh(ctx)

	if s.interval > 0 {
		go s.refreshLoop(ctx)
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("API server starting on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

func (s *Server) snapshot() *snapshot {
	return s.current.Load()
}

// requireBook rejects data requests until a first refresh has succeeded.
func (s *Server) requireBook(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.snapshot() == nil {
			writeError(w, http.StatusServiceUnavailable, errors.New("records not loaded yet"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugw("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// statusFor maps a load failure to the status reported to API clients.
func statusFor(err error) int {
	switch {
	case types.IsKind(err, types.KindTransport), types.IsKind(err, types.KindMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
