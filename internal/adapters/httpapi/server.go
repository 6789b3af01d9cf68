// Package httpapi serves brand and category lookups over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/logging"
)

// Options tune the server
type Options struct {
	RateLimitPerSecond float64
	RateLimitBurst     int
	ShutdownTimeout    time.Duration
}

// Server exposes the resolvers as a read-only JSON API
type Server struct {
	brands     ports.NameResolver
	categories ports.NameResolver
	assets     ports.AssetStore // nil when no asset directory is configured
	metrics    *Metrics
	limiter    *rateLimiter
	log        logrus.FieldLogger
	opts       Options
}

// NewServer wires resolvers, the optional asset store and middleware
func NewServer(brands, categories ports.NameResolver, assets ports.AssetStore, opts Options, log logrus.FieldLogger) *Server {
	log = logging.OrDiscard(log)
	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = 50
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 100
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	m := NewMetrics()
	return &Server{
		brands:     brands,
		categories: categories,
		assets:     assets,
		metrics:    m,
		limiter:    newRateLimiter(opts.RateLimitPerSecond, opts.RateLimitBurst, m, log),
		log:        log,
		opts:       opts,
	}
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics { return s.metrics }

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware(s.log, s.metrics))

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(s.limiter.Middleware)
	v1.HandleFunc("/brands/resolve", s.handleResolve(s.brands)).Methods("GET")
	v1.HandleFunc("/brands/has", s.handleHas(s.brands)).Methods("GET")
	v1.HandleFunc("/categories/resolve", s.handleResolve(s.categories)).Methods("GET")
	v1.HandleFunc("/categories/has", s.handleHas(s.categories)).Methods("GET")
	v1.HandleFunc("/assets/{path:.+}", s.handleAsset).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("lookup API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down lookup API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
