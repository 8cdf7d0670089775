package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/render"
	"github.com/couchcryptid/gps-points-dashboard/internal/dashboard"
	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dashboard is the per-request pipeline behind the UI routes.
type Dashboard interface {
	sharedobs.ReadinessChecker
	View(ctx context.Context, sel domain.Selection, changed domain.Level) dashboard.View
	Options(sel domain.Selection) dashboard.Options
	Summary(sel domain.Selection) domain.Summary
	Map(sel domain.Selection) string
	BarChart(w io.Writer, sel domain.Selection) error
	PieChart(w io.Writer, sel domain.Selection) error
}

// Server exposes the dashboard UI, its JSON API, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	pages      *render.PageRenderer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the dashboard and operational routes.
func NewServer(addr string, d Dashboard, pages *render.PageRenderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		dashboard: d,
		pages:     pages,
		logger:    logger,
		metrics:   metrics,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      chain(mux, s.requestLog, s.recovery),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /map", s.handleMap)
	mux.HandleFunc("GET /charts/bar.svg", s.handleChart(d.BarChart))
	mux.HandleFunc("GET /charts/pie.svg", s.handleChart(d.PieChart))
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(d))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
