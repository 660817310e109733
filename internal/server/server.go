// Package server exposes libscope over a JSON HTTP API.
//
// Every JSON response carries "status": "success" or "status": "error";
// errors also carry "message". Status codes come from [errors.HTTPStatus],
// except on the PyPI search route, which always answers 200.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/libscope/pkg/diagram"
	"github.com/matzehuels/libscope/pkg/examples"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/recommend"
	"github.com/matzehuels/libscope/pkg/registry"
)

const shutdownTimeout = 10 * time.Second

// Services are the components the handlers dispatch to. Inspector, Examples
// and Registry are required.
type Services struct {
	Inspector   *introspect.Inspector
	Examples    *examples.Aggregator
	Registry    *registry.Client
	Recommender *recommend.Recommender // nil uses the embedded catalog without registry fallback
	Diagrams    *diagram.Renderer      // nil renders without caching
}

// Options configures a [Server].
type Options struct {
	// Prefix is prepended to every API route. Default "/api".
	Prefix string
	Logger *log.Logger
}

// Server routes API requests to the services.
type Server struct {
	svc    Services
	logger *log.Logger
	router chi.Router
}

// New creates a Server and builds its routes.
func New(svc Services, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Prefix == "" {
		opts.Prefix = "/api"
	}
	if svc.Recommender == nil {
		svc.Recommender = recommend.New(recommend.Options{Logger: opts.Logger})
	}
	if svc.Diagrams == nil {
		svc.Diagrams = diagram.NewRenderer(diagram.RendererOptions{Logger: opts.Logger})
	}
	s := &Server{svc: svc, logger: opts.Logger}
	s.router = s.routes(opts.Prefix)
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute, // example aggregation fans out to three upstreams
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
