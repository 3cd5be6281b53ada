// Package server provides the HTTP REST API for the career mentor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/config"
	"github.com/jonathan/career-mentor/internal/responder"
	"github.com/jonathan/career-mentor/internal/server/middleware"
	"github.com/jonathan/career-mentor/internal/server/ratelimit"
	"github.com/jonathan/career-mentor/internal/session"
	"github.com/jonathan/career-mentor/internal/upload"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	catalog     *catalog.Catalog
	logger      *slog.Logger
	httpServer  *http.Server
	rateLimiter *ratelimit.Limiter

	chats   *session.Registry[*chat.Flow]
	uploads *session.Registry[*upload.Flow]

	newChatResponder   func() responder.ChatResponder
	newUploadResponder func() responder.UploadResponder

	closeOnce sync.Once
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCatalog replaces the embedded dataset.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithChatResponder makes every chat view use r instead of the simulated mentor.
func WithChatResponder(r responder.ChatResponder) Option {
	return func(s *Server) {
		s.newChatResponder = func() responder.ChatResponder { return r }
	}
}

// WithUploadResponder makes every upload view use r instead of the simulated upload.
func WithUploadResponder(r responder.UploadResponder) Option {
	return func(s *Server) {
		s.newUploadResponder = func() responder.UploadResponder { return r }
	}
}

// New creates a new server instance. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		s.catalog = c
	}
	if s.newChatResponder == nil {
		s.newChatResponder = func() responder.ChatResponder {
			return responder.NewChat(s.catalog.Replies(), responder.Options{
				Latency: cfg.Chat.Latency,
				Timeout: cfg.Chat.Timeout,
				Retry:   responder.RetryPolicy{Attempts: cfg.Chat.RetryAttempts, Backoff: cfg.Chat.RetryBackoff},
				Seed:    cfg.Chat.Seed,
			})
		}
	}
	if s.newUploadResponder == nil {
		s.newUploadResponder = func() responder.UploadResponder {
			return responder.NewUpload(responder.Options{
				Latency: cfg.Upload.Latency,
				Timeout: cfg.Upload.Timeout,
				Retry:   responder.RetryPolicy{Attempts: cfg.Upload.RetryAttempts, Backoff: cfg.Upload.RetryBackoff},
			})
		}
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit))
	s.chats = session.New[*chat.Flow](session.Options{
		Kind:          "chat",
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
	})
	s.uploads = session.New[*upload.Flow](session.Options{
		Kind:          "upload",
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
	})

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Admin dashboard
	mux.HandleFunc("GET /admin/stats", s.handleAdminStats)
	mux.HandleFunc("GET /admin/logs", s.handleAdminLogs)
	mux.HandleFunc("GET /admin/logs/export", s.handleAdminExport)

	// Career suggestions
	mux.HandleFunc("GET /suggestions", s.handleListSuggestions)
	mux.HandleFunc("GET /suggestions/{id}", s.handleGetSuggestion)

	// Chat views
	mux.HandleFunc("GET /chat/quick-questions", s.handleQuickQuestions)
	mux.HandleFunc("POST /chat/sessions", s.handleCreateChat)
	mux.HandleFunc("GET /chat/sessions/{id}", s.handleGetChat)
	mux.HandleFunc("DELETE /chat/sessions/{id}", s.handleDeleteChat)
	mux.HandleFunc("POST /chat/sessions/{id}/messages", s.handleSendMessage)
	mux.HandleFunc("POST /chat/sessions/{id}/messages/stream", s.handleSendMessageStream)

	// Upload views
	mux.HandleFunc("POST /uploads", s.handleCreateUpload)
	mux.HandleFunc("GET /uploads/{id}", s.handleGetUpload)
	mux.HandleFunc("DELETE /uploads/{id}", s.handleDeleteUpload)
	mux.HandleFunc("POST /uploads/{id}/file", s.handleSelectFile)
	mux.HandleFunc("POST /uploads/{id}/submit", s.handleSubmitUpload)
	mux.HandleFunc("POST /uploads/{id}/reset", s.handleResetUpload)

	// Account forms
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("/", s.handleNotFound)

	handler := middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
		middleware.CORS(cfg.Server.CORSOrigin),
		s.withRateLimit,
	)(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until ctx is canceled, then shuts down gracefully and
// tears down every live view.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", slog.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// Close stops background goroutines and closes every live view.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.rateLimiter.Stop()
		s.chats.Stop()
		s.uploads.Stop()
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errResponse maps err to a status and writes it.
func (s *Server) errResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("error", err))
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, validationMessage(err))
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit),
		slog.String("reset_at", info.ResetTime.Format(time.RFC3339)),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
