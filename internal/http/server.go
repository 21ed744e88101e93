// Package http exposes the JSON API: session-cookie auth, tabs,
// transactions, rules, payday planning, household splits, expense series,
// and notifications.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "github.com/sohamkakraa/TabScape/internal/log"
	"github.com/sohamkakraa/TabScape/internal/middleware/ratelimit"
	"github.com/sohamkakraa/TabScape/internal/middleware/security"
	"github.com/sohamkakraa/TabScape/internal/middleware/trace"
	"github.com/sohamkakraa/TabScape/internal/services"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

type Server struct {
	http.Server

	storage      *storage.SQLiteRepository
	transactions *services.TransactionService
	planner      *services.PlannerService
	rules        *services.RuleService

	sessionTTL time.Duration
	bcryptCost int

	logger       *applog.StructuredLogger
	limiter      *ratelimit.Limiter
	detector     *security.Detector
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// Options carries the dependencies and tunables for NewServer.
type Options struct {
	Addr         string
	Storage      *storage.SQLiteRepository
	Transactions *services.TransactionService
	Planner      *services.PlannerService
	Rules        *services.RuleService
	SessionTTL   time.Duration
	BcryptCost   int
	Logger       *applog.Logger

	// TrustedProxies lists additional CIDR ranges whose forwarded
	// headers are honored for client IP extraction.
	TrustedProxies []string
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if opts.Rules == nil {
		opts.Rules = services.NewRuleService(opts.Storage)
	}

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		storage:      opts.Storage,
		transactions: opts.Transactions,
		planner:      opts.Planner,
		rules:        opts.Rules,
		sessionTTL:   opts.SessionTTL,
		bcryptCost:   opts.BcryptCost,
		logger:       applog.NewStructuredLogger(logger),
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     security.NewDetector(),
	}

	for _, cidr := range opts.TrustedProxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			slog.Warn("Skipping invalid trusted proxy CIDR", "cidr", cidr, "error", err)
		}
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/session", s.requireAuth(s.handleSession))

	mux.HandleFunc("GET /api/tabs", s.requireAuth(s.handleListTabs))
	mux.HandleFunc("POST /api/tabs", s.requireAuth(s.handleCreateTab))
	mux.HandleFunc("POST /api/tabs/{id}/close", s.requireAuth(s.handleCloseTab))

	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/rules", s.requireAuth(s.handleListRules))
	mux.HandleFunc("POST /api/rules", s.requireAuth(s.handleCreateRule))
	mux.HandleFunc("DELETE /api/rules/{id}", s.requireAuth(s.handleDeleteRule))

	mux.HandleFunc("GET /api/payday", s.requireAuth(s.handleGetPaydaySettings))
	mux.HandleFunc("POST /api/payday", s.requireAuth(s.handleSavePaydaySettings))
	mux.HandleFunc("GET /api/payday/plan", s.requireAuth(s.handlePaydayPlan))

	mux.HandleFunc("GET /api/income", s.requireAuth(s.handleListIncome))
	mux.HandleFunc("POST /api/income", s.requireAuth(s.handleCreateIncome))
	mux.HandleFunc("DELETE /api/income/{id}", s.requireAuth(s.handleDeleteIncome))

	mux.HandleFunc("GET /api/preferences", s.requireAuth(s.handleGetPreferences))
	mux.HandleFunc("POST /api/preferences", s.requireAuth(s.handleSavePreferences))

	mux.HandleFunc("GET /api/household", s.requireAuth(s.handleGetHousehold))
	mux.HandleFunc("POST /api/household", s.requireAuth(s.handleSaveHousehold))

	mux.HandleFunc("GET /api/tab-shares", s.requireAuth(s.handleListTabShares))
	mux.HandleFunc("POST /api/tab-shares", s.requireAuth(s.handleReplaceTabShares))
	mux.HandleFunc("PATCH /api/tab-shares/{id}", s.requireAuth(s.handleUpdateTabShare))

	mux.HandleFunc("GET /api/expense-series", s.requireAuth(s.handleGetExpenseSeries))
	mux.HandleFunc("POST /api/expense-series", s.requireAuth(s.handleSaveExpenseSeries))
	mux.HandleFunc("GET /api/expense-series/forecast", s.requireAuth(s.handleForecast))

	mux.HandleFunc("GET /api/notifications", s.requireAuth(s.handleListNotifications))
	mux.HandleFunc("POST /api/notifications", s.requireAuth(s.handleMarkNotificationRead))

	headers := security.NewHeadersMiddleware(apiHeadersConfig())
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	handler := s.rateLimitMutations(mux)
	handler = s.flagSuspicious(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)
	s.Handler = handler

	return s
}

// apiHeadersConfig trims the browser-oriented defaults down to what a JSON
// API serves. No scripts or styles ever come from this origin.
func apiHeadersConfig() security.HeadersConfig {
	cfg := security.DefaultHeadersConfig()
	cfg.CSP = "default-src 'none'; frame-ancestors 'none'"
	cfg.CrossOriginEmbedder = ""
	return cfg
}

// flagSuspicious logs requests matching known probe patterns. They are
// still served; a false positive must never break a legitimate client.
func (s *Server) flagSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", s.detector.ExtractClientIP(r),
				"method", r.Method, "path", r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMutations applies the per-IP limiter to mutating methods only;
// reads stay unthrottled.
func (s *Server) rateLimitMutations(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			clientIP := s.detector.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the limiter's cleanup goroutine and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		reqs := s.tracer.GetMetrics()
		rl := s.limiter.GetMetrics()
		sec := s.detector.GetMetrics()
		slog.InfoContext(ctx, "HTTP server draining",
			"requests_served", reqs.TotalRequests,
			"rate_limited", rl.TotalDenied,
			"suspicious_requests", sec.SuspiciousRequests)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
