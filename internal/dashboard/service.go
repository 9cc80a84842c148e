// Package dashboard serves the read-only HTTP status surface: current
// alert level, LED hardware state, restart bookkeeping, and deployed
// commit, plus a live WebSocket feed and a Prometheus scrape endpoint.
// It never mutates device state.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
)

// Service wires routing, auth, and the HTTP server lifecycle behind the
// same Run(ctx) error entrypoint every other process exposes.
type Service struct {
	server *serverService
}

// New builds the dashboard's router and server. Returns an error if the
// configured operator bcrypt hashes or metrics CIDR allow-list are
// malformed, since both are fatal misconfigurations best caught at
// startup rather than on the first request.
func New(cfg *config.Config) (*Service, error) {
	auth, err := NewBasicAuth(cfg.Dashboard.Operators)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	metricsGate, err := NewIPAllowList(cfg.Dashboard.MetricsAllowCIDRs)
	if err != nil {
		return nil, fmt.Errorf("dashboard: metrics_allow_cidrs: %w", err)
	}

	h := &handlers{paths: cfg.Paths}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(60, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", h.handleHealthz)

	r.Group(func(protected chi.Router) {
		protected.Use(auth.Middleware)
		protected.Get("/", h.handleStatusPage)
		protected.Get("/status", h.handleResolverDecision)
		protected.Get("/status/led", h.handleLEDStatus)
		protected.Get("/status/restarts", h.handleRestarts)
		protected.Get("/status/update", h.handleUpdateState)
		protected.Get("/ws", h.handleWS)
	})

	r.Group(func(metricsRoute chi.Router) {
		metricsRoute.Use(metricsGate.Middleware)
		metricsRoute.Handle("/metrics", promhttp.Handler())
	})

	addr := fmt.Sprintf("%s:%d", cfg.Dashboard.Host, cfg.Dashboard.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Service{server: newServerService(httpSrv, 10*time.Second)}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	logging.Info().Msg("dashboard listening")
	return s.server.Run(ctx)
}
