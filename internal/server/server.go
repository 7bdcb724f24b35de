// Package server provides the HTTP REST API for editing resumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/career-pulse/internal/assistant"
	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/server/ratelimit"
	"github.com/jonathan/career-pulse/internal/store"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *store.Store
	gateway     *assistant.Gateway
	rateLimiter *ratelimit.Limiter
	log         *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port           int
	Store          *store.Store
	Gateway        *assistant.Gateway
	Logger         *slog.Logger
	RateLimit      *ratelimit.Config // nil reads the RATE_LIMIT_* environment
	AllowedOrigins []string          // empty allows every origin
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server requires a store")
	}
	if cfg.Gateway == nil {
		cfg.Gateway = assistant.New(nil, cfg.Logger)
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		store:       cfg.Store,
		gateway:     cfg.Gateway,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		log:         observability.OrDefault(cfg.Logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /capabilities", s.handleCapabilities)
	mux.Handle("GET /metrics", observability.MetricsHandler())

	// Resumes
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /resumes/{id}", s.handleReplaceResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("GET /resumes/{id}/preview", s.handlePreview)
	mux.HandleFunc("PUT /resumes/{id}/name", s.handleSetName)
	mux.HandleFunc("PUT /resumes/{id}/summary", s.handleSetSummary)
	mux.HandleFunc("PUT /resumes/{id}/personal-info/{field}", s.handleSetPersonalInfo)

	// Experience and bullets
	mux.HandleFunc("POST /resumes/{id}/experience", s.handleAddExperience)
	mux.HandleFunc("DELETE /resumes/{id}/experience/{index}", s.handleRemoveExperience)
	mux.HandleFunc("PUT /resumes/{id}/experience/{index}/{field}", s.handleSetExperienceField)
	mux.HandleFunc("POST /resumes/{id}/experience/{index}/bullets", s.handleAddBullet)
	mux.HandleFunc("PUT /resumes/{id}/experience/{index}/bullets/{bullet}", s.handleEditBullet)
	mux.HandleFunc("DELETE /resumes/{id}/experience/{index}/bullets/{bullet}", s.handleRemoveBullet)

	// Education
	mux.HandleFunc("POST /resumes/{id}/education", s.handleAddEducation)
	mux.HandleFunc("DELETE /resumes/{id}/education/{index}", s.handleRemoveEducation)
	mux.HandleFunc("PUT /resumes/{id}/education/{index}/{field}", s.handleSetEducationField)

	// Skills
	mux.HandleFunc("POST /resumes/{id}/skills", s.handleAddSkills)
	mux.HandleFunc("DELETE /resumes/{id}/skills/{skill_id}", s.handleRemoveSkill)

	// Writing assistant
	mux.HandleFunc("POST /resumes/{id}/suggestions/summary", s.handleSuggestSummary)
	mux.HandleFunc("POST /resumes/{id}/suggestions/experience", s.handleSuggestBullet)
	mux.HandleFunc("POST /resumes/{id}/suggestions/skills", s.handleSuggestSkills)
	mux.HandleFunc("POST /resumes/{id}/suggestions/apply", s.handleApplySuggestion)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler.Handler(s.withLogging(s.withRateLimit(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // suggestions wait on the provider
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down
// gracefully and releases the store and the gateway.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	s.log.Info("server stopped")
	return err
}

// Close stops background work and closes the gateway and the store.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if err := s.gateway.Close(); err != nil {
		s.log.Warn("failed to close assistant", slog.Any("error", err))
	}
	if err := s.store.Close(); err != nil {
		s.log.Warn("failed to close store", slog.Any("error", err))
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs every request and counts it by method and status.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		observability.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCapabilities tells clients whether the writing assistant can be offered
// and whether edits are being saved.
func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{
		"ai_available":      s.gateway.Available(),
		"storage_available": !s.store.Suspended(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", slog.Any("error", err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr writes the status and message HTTPStatus derives from err.
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", slog.Any("error", err))
	}
	s.errorResponse(w, status, errorMessage(err))
}

// extractClientID uses the IP address from RemoteAddr.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		slog.String("client", clientID),
		slog.Int("limit", info.Limit),
		slog.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
