// Package server exposes the estimation engine as a set of HTTP tool
// endpoints. Every tool response carries both structured data and a
// human-readable narrative of the same result.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ceddto100/edgeline/internal/config"
	"github.com/ceddto100/edgeline/internal/estimator"
	"github.com/ceddto100/edgeline/internal/logger"
	"github.com/ceddto100/edgeline/internal/metrics"
	"github.com/ceddto100/edgeline/internal/repository"
	"github.com/ceddto100/edgeline/internal/workflow"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the collaborators the server routes requests to.
type Deps struct {
	Estimator    *estimator.Estimator
	Orchestrator *workflow.Orchestrator
	Store        repository.BetStore
	DB           DatabasePinger
	BetLogger    *logger.BetLogger
	Logger       *logrus.Logger
}

// Server is the HTTP tool server for the estimation engine.
type Server struct {
	cfg             *config.Config
	logger          *logrus.Logger
	estimator       *estimator.Estimator
	orchestrator    *workflow.Orchestrator
	store           repository.BetStore
	db              DatabasePinger
	betLogger       *logger.BetLogger
	validate        *validator.Validate
	defaultFraction float64
	server          *http.Server
	mu              sync.RWMutex
	ready           bool
}

// New creates the tool server. The bet store must be non-nil; pass the
// in-memory store when PostgreSQL is not configured.
func New(cfg *config.Config, deps Deps) *Server {
	return &Server{
		cfg:             cfg,
		logger:          deps.Logger,
		estimator:       deps.Estimator,
		orchestrator:    deps.Orchestrator,
		store:           deps.Store,
		db:              deps.DB,
		betLogger:       deps.BetLogger,
		validate:        validator.New(),
		defaultFraction: cfg.Staking.DefaultKellyFraction,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Router assembles the chi router with all tool and operational routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := s.cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/tools", func(r chi.Router) {
		r.Post("/estimate-football", s.handleEstimateFootball)
		r.Post("/estimate-basketball", s.handleEstimateBasketball)
		r.Post("/estimate-hockey-total", s.handleEstimateHockeyTotal)
		r.Post("/probability-by-name", s.handleProbabilityByName)
		r.Post("/kelly-calculate", s.handleKellyCalculate)
		r.Post("/orchestrate", s.handleOrchestrate)
		r.Post("/log-bet", s.handleLogBet)
	})

	r.Get("/bets/{sessionID}", s.handleGetSessionBets)
	r.Post("/bets/{betID}/outcome", s.handleUpdateOutcome)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ready", s.handleReady)

	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, metrics.Handler())
	}

	return r
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	readTimeout := time.Duration(s.cfg.Server.ReadTimeoutSec) * time.Second
	if readTimeout == 0 {
		readTimeout = 5 * time.Second
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"port": s.cfg.Server.Port,
			"app":  s.cfg.App.Name,
		}).Info("Tool server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.SetReady(true)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.SetReady(false)
	s.logger.Info("Tool server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// healthResponse represents the JSON response for health check endpoints.
type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
}

// readyResponse represents the JSON response for readiness checks.
type readyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   s.cfg.App.Name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady checks readiness and, when configured, database
// connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.db.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := readyResponse{
		Service:  s.cfg.App.Name,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	if allHealthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}
