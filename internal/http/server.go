// Package http exposes the transaction view store as a JSON API for
// presentation collaborators: the current view, derived statistics, and
// the filter/sort/reload mutation endpoints.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ledgerview/internal/ledger"
)

type Server struct {
	http.Server

	store        *ledger.Store
	defaultCount int

	rateLimiter *rateLimiter

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run http.Server.
// defaultCount is the dataset size used by /api/refresh when the caller
// does not specify one.
func NewServer(addr string, store *ledger.Store, defaultCount, rateLimitPerMinute int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        store,
		defaultCount: defaultCount,
		rateLimiter:  newRateLimiter(rateLimitPerMinute),
		started:      time.Now(),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/transactions", s.withRequestBoundary(s.handleTransactions))
	mux.HandleFunc("/api/stats", s.withRequestBoundary(s.handleStats))
	mux.HandleFunc("/api/filters", s.withRequestBoundary(s.handleFilters))
	mux.HandleFunc("/api/sort", s.withRequestBoundary(s.handleSort))
	mux.HandleFunc("/api/refresh", s.withRequestBoundary(s.handleRefresh))

	return s
}

// Shutdown stops the HTTP server and the rate limiter cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withRequestBoundary adds request logging and per-client rate limiting.
// The rate limiter is the server-side half of the input debouncing the
// presentation layer is expected to do: rapid repeated filter mutations
// are rejected here instead of triggering recomputation storms.
func (s *Server) withRequestBoundary(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		// Reads are cheap snapshots; only mutations are limited.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"component", "http",
				"client_ip", clientIP,
				"method", r.Method,
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"component", "http",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "component", "http", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
