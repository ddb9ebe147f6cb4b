package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"emotion-monitor/internal/metrics"
	"emotion-monitor/internal/models"
	"emotion-monitor/internal/monitor"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	version      = "1.0.0"
	defaultLimit = 10
)

// ResultReader is the in-process view of emitted results.
type ResultReader interface {
	Latest() (models.Result, bool)
	Recent(limit int) []models.Result
	Status() monitor.Status
}

// HistoryStore serves recent results from an external store when configured.
type HistoryStore interface {
	Recent(ctx context.Context, count int) ([]models.Result, error)
}

type Server struct {
	router   *mux.Router
	results  ResultReader
	history  HistoryStore
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewServer wires the routes. history may be nil, in which case recent results
// come from the monitor's in-memory history.
func NewServer(results ResultReader, history HistoryStore, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		results:  results,
		history:  history,
		metrics:  m,
		gatherer: gatherer,
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/emotion/current", s.currentHandler).Methods("GET")
	s.router.HandleFunc("/emotion/recent", s.recentHandler).Methods("GET")
	s.router.Handle("/metrics/prometheus", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := s.results.Status()

	health := map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"version":    version,
		"cycles":     status.Cycles,
		"emitted":    status.Emitted,
		"last_state": status.State,
		"buffers":    status.Buffers,
	}

	s.writeJSON(w, r, start, http.StatusOK, health)
}

func (s *Server) currentHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, ok := s.results.Latest()
	if !ok {
		s.writeError(w, r, start, http.StatusNotFound, "no prediction yet")
		return
	}

	s.writeJSON(w, r, start, http.StatusOK, result)
}

func (s *Server) recentHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, start, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var results []models.Result
	if s.history != nil {
		var err error
		results, err = s.history.Recent(r.Context(), limit)
		if err != nil {
			s.logger.Error("Failed to read recent results", zap.Error(err))
			s.writeError(w, r, start, http.StatusServiceUnavailable, "history unavailable")
			return
		}
	} else {
		results = s.results.Recent(limit)
	}

	s.writeJSON(w, r, start, http.StatusOK, results)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, start time.Time, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
	s.observe(r, start, status)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, start time.Time, status int, msg string) {
	http.Error(w, msg, status)
	s.observe(r, start, status)
}

func (s *Server) observe(r *http.Request, start time.Time, status int) {
	duration := time.Since(start).Seconds()
	s.metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Server is ready to handle requests", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	if err := <-done; err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
