// Package web serves the HTTP API.
package web

import (
	"context"
	_ "embed"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/metrics"
)

// naturalLanguageRoute is the /strings child that shadows a literal value of
// the same name.
const naturalLanguageRoute = "filter-by-natural-language"

//go:embed docs/api.md
var apiDoc []byte

// NewRouter wires middleware and routes. /metrics is mounted here only when
// no separate metrics listener is configured.
func NewRouter(h *Handlers, cfg *config.Config) http.Handler {
	router := chi.NewRouter()
	router.Use(middlewares(h, cfg)...)

	router.NotFound(h.HandleNotFound)
	router.MethodNotAllowed(h.HandleMethodNotAllowed)

	router.Get("/", h.HandleDocs)
	router.Get("/health", h.HandleHealth)
	if cfg.MetricsPort == 0 {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Route("/strings", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/"+naturalLanguageRoute, h.HandleFilterNatural)
		r.Get("/*", h.HandleGet)
		r.Delete("/*", h.HandleDelete)
	})

	return router
}

// middlewares returns the API middleware stack, outermost first. instrument
// wraps recoverer so requests that panic are counted as 500s.
func middlewares(h *Handlers, cfg *config.Config) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		requestID,
		chimiddleware.RealIP,
		accessLog(h.log),
		instrument(h.metrics),
		recoverer(h.log),
		securityHeaders,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader, "Location"},
			MaxAge:         300,
		}),
	}
}

// NewServer creates the HTTP server for the API.
func NewServer(h *Handlers, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           NewRouter(h, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewMetricsServer creates the standalone metrics listener.
func NewMetricsServer(m *metrics.Collector, cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves srv until ctx is cancelled, then shuts down gracefully within
// timeout.
func Run(ctx context.Context, srv *http.Server, log *zap.Logger, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if stderrors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	log.Info("listening", zap.String("addr", "http://"+srv.Addr))

	if strings.HasPrefix(srv.Addr, "0.0.0.0") || strings.HasPrefix(srv.Addr, "[::]") || strings.HasPrefix(srv.Addr, ":") {
		log.Warn("server is binding to all interfaces and may be accessible from the network", zap.String("addr", srv.Addr))
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down", zap.String("addr", srv.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
