// Package http provides the HTTP server and handlers for the budget
// assistant API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/classifier"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/resolver"
)

// requestsPerMinute is the per-client rate limit applied to POST requests.
const requestsPerMinute = 60

// Pinger is implemented by backends that can verify connectivity, used by
// the readiness endpoint. The in-memory backend has nothing to check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	http.Server

	reader       budget.BudgetReader
	resolver     *resolver.Resolver
	classifier   classifier.Classifier
	completeness core.Completeness
	pinger       Pinger

	rateLimiter  *rateLimiter
	metrics      securityMetrics
	logger       *log.Logger
	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// pinger may be nil when the backend has no connection to verify.
func NewServer(addr string, reader budget.BudgetReader, res *resolver.Resolver, cls classifier.Classifier, completeness core.Completeness, pinger Pinger, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		reader:       reader,
		resolver:     res,
		classifier:   cls,
		completeness: completeness,
		pinger:       pinger,
		rateLimiter:  newRateLimiter(requestsPerMinute),
		logger:       logger.WithComponent(log.ComponentHTTP),
		started:      time.Now(),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/budget/year-totals", s.withMiddleware(s.handleYearTotals))
	mux.HandleFunc("/api/budget/yoy", s.withMiddleware(s.handleYoY))
	mux.HandleFunc("/api/budget/category", s.withMiddleware(s.handleCategoryRanking))
	mux.HandleFunc("/api/budget/shares", s.withMiddleware(s.handleCategoryShares))
	mux.HandleFunc("/api/budget/line-item", s.withMiddleware(s.handleLineItem))
	mux.HandleFunc("/api/budget/category-yoy", s.withMiddleware(s.handleCategoryYoY))
	mux.HandleFunc("/ask", s.withMiddleware(s.handleAsk))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

type contextKey string

const requestIDKey contextKey = "request_id"

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit the classification endpoint, it is the expensive one.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, &s.metrics) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded", "retry in 60s").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).String(),
	}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
			ErrorResponse(http.StatusServiceUnavailable, "not ready", err.Error()).Write(w)
			return
		}
	}
	NewJSONResponse().Data(map[string]any{"status": "ready"}).Write(w)
}
