// Package http exposes the ledger over a JSON API plus statement
// exports. Handlers are thin: resolve the user, call the store, map
// errors to status codes. All aggregation and rendering lives below
// this package.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cashflow/internal/blob"
	"cashflow/internal/cache"
	"cashflow/internal/ledger"
	applog "cashflow/internal/log"
	"cashflow/internal/profile"
	"cashflow/internal/session"
)

// Deps carries everything the server talks to.
type Deps struct {
	Ledger   *ledger.Store
	Profiles *profile.Store
	Sessions *session.Store
	Blobs    blob.Store
	Exports  cache.Cache[Export]
	Logger   *applog.Logger
}

type Server struct {
	http.Server

	ledger   *ledger.Store
	profiles *profile.Store
	sessions *session.Store
	blobs    blob.Store
	exports  cache.Cache[Export]
	logger   *applog.Logger

	limiter      *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ledger:   deps.Ledger,
		profiles: deps.Profiles,
		sessions: deps.Sessions,
		blobs:    deps.Blobs,
		exports:  deps.Exports,
		logger:   deps.Logger,
		limiter:  newRateLimiter(),
	}
	if s.logger == nil {
		s.logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/month", s.withUser(s.handleGetMonth))
	mux.HandleFunc("GET /api/year", s.withUser(s.handleGetYear))

	mux.HandleFunc("POST /api/expenses", s.withUser(s.handleAddExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withUser(s.handleDeleteExpense))

	mux.HandleFunc("PUT /api/income", s.withUser(s.handleUpdateIncome))

	mux.HandleFunc("GET /api/categories", s.withUser(s.handleGetCategories))
	mux.HandleFunc("PUT /api/categories/{id}/limit", s.withUser(s.handleSaveLimit))
	mux.HandleFunc("DELETE /api/categories/{id}/limit", s.withUser(s.handleClearLimit))

	mux.HandleFunc("GET /api/subscriptions", s.withUser(s.handleGetSubscriptions))
	mux.HandleFunc("POST /api/subscriptions", s.withUser(s.handleAddSubscription))
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.withUser(s.handleDeleteSubscription))

	mux.HandleFunc("GET /api/profile", s.withUser(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.withUser(s.handleSaveProfile))

	mux.HandleFunc("GET /api/session", s.handleGetSession)
	mux.HandleFunc("POST /api/session", s.handleSignIn)
	mux.HandleFunc("DELETE /api/session", s.handleSignOut)

	mux.HandleFunc("GET /export/month.csv", s.withUser(s.exportMonth(formatCSV)))
	mux.HandleFunc("GET /export/month.html", s.withUser(s.exportMonth(formatHTML)))
	mux.HandleFunc("GET /export/month.pdf", s.withUser(s.exportMonth(formatPDF)))
	mux.HandleFunc("GET /export/year.csv", s.withUser(s.exportYear(formatCSV)))
	mux.HandleFunc("GET /export/year.html", s.withUser(s.exportYear(formatHTML)))
	mux.HandleFunc("GET /export/year.pdf", s.withUser(s.exportYear(formatPDF)))

	s.Handler = applog.Middleware(s.logger)(s.withSecurityHeaders(mux))
	return s
}

// Shutdown stops the listener and the limiter's bookkeeping.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withSecurityHeaders sets the standard response headers and rate-limits
// mutating requests per client IP.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.limiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldRequestID, requestID,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				"client_ip", clientIP)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

type contextKey string

const requestIDKey contextKey = "request_id"

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady probes the blob store; a backend that cannot answer a
// read is not ready to serve.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, _, err := s.blobs.Get(r.Context(), "readyz-probe"); err != nil {
		s.logger.ErrorContext(r.Context(), "Readiness probe failed", applog.FieldError, err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
