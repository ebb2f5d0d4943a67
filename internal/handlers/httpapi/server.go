// Package httpapi exposes the marketplace core over HTTP. Every core
// operation is a callable endpoint returning its result or a typed error;
// the caller identity arrives pre-verified from the upstream auth layer.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingService "github.com/skillverse/skillverse/internal/services/booking"
	ledgerService "github.com/skillverse/skillverse/internal/services/ledger"
	reviewService "github.com/skillverse/skillverse/internal/services/review"
	sessionService "github.com/skillverse/skillverse/internal/services/session"
)

// Config holds the services the server exposes
type Config struct {
	BookingService bookingService.Service
	SessionService sessionService.Service
	LedgerService  ledgerService.Service
	ReviewService  reviewService.Service

	// Registry receives the operation counters; defaults to the global
	// Prometheus registry
	Registry *prometheus.Registry
}

// Server is the marketplace HTTP API server
type Server struct {
	booking  bookingService.Service
	session  sessionService.Service
	ledger   ledgerService.Service
	review   reviewService.Service
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// New creates a new API server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BookingService == nil || cfg.SessionService == nil || cfg.LedgerService == nil || cfg.ReviewService == nil {
		return nil, errors.New("all services are required")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Server{
		booking:  cfg.BookingService,
		session:  cfg.SessionService,
		ledger:   cfg.LedgerService,
		review:   cfg.ReviewService,
		metrics:  NewMetrics(registry),
		gatherer: registry,
	}, nil
}

// Handler returns the chi router with all routes mounted
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(requireIdentity)

		r.Post("/bookings", s.handleBook)

		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{sessionID}", s.handleGetSession)
		r.Post("/sessions/{sessionID}/confirm", s.handleConfirm)
		r.Post("/sessions/{sessionID}/cancel", s.handleCancel)
		r.Post("/sessions/{sessionID}/complete", s.handleComplete)
		r.Post("/sessions/{sessionID}/video-token", s.handleVideoToken)

		r.Get("/ledger/balance", s.handleBalance)
		r.Get("/ledger/history", s.handleHistory)
		r.Post("/ledger/grant", s.handleGrant)
		r.Post("/ledger/reconcile", s.handleReconcile)

		r.Post("/reviews", s.handleSubmitReview)
		r.Get("/users/{userID}/reviews", s.handleListReviews)
	})

	return r
}
