// Package api provides a read-only HTTP API over the skill registry:
// listing skills, fetching a single skill, resolving requests, and
// triggering a registry refresh.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillroute/pkg/logger"
	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/resolver"
	"github.com/jingkaihe/skillroute/pkg/respond"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

// Server serves the skill registry over HTTP
type Server struct {
	router   *mux.Router
	store    *skills.Store
	resolver *resolver.Resolver
	config   *ServerConfig
	server   *http.Server
}

// ServerConfig holds the configuration for the API server
type ServerConfig struct {
	Host string
	Port int
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// NewServer creates a new API server over the given store.
func NewServer(config *ServerConfig, store *skills.Store, res *resolver.Resolver) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if res == nil {
		res = resolver.New()
	}

	s := &Server{
		router:   mux.NewRouter(),
		store:    store,
		resolver: res,
		config:   config,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all the HTTP routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/skills", s.handleListSkills).Methods("GET")
	api.HandleFunc("/skills/{name}", s.handleGetSkill).Methods("GET")
	api.HandleFunc("/resolve", s.handleResolve).Methods("POST")
	api.HandleFunc("/refresh", s.handleRefresh).Methods("POST")
	api.HandleFunc("/healthz", s.handleHealthz).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.corsMiddleware)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests with a per-request id
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithLogger(r.Context(), logger.G(r.Context()).WithField("request_id", requestID))
		next.ServeHTTP(rw, r.WithContext(ctx))

		logger.G(ctx).WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration":    time.Since(start),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SkillResponse represents a skill in API responses
type SkillResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

func toSkillResponse(s *skills.Skill) SkillResponse {
	return SkillResponse{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Aliases:     s.Aliases,
	}
}

// handleListSkills handles GET /api/skills
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	registry := s.store.Snapshot()

	category := r.URL.Query().Get("category")

	var records []*skills.Skill
	if category != "" {
		records = registry.InCategory(category)
	} else {
		records = registry.Records()
	}

	response := make([]SkillResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toSkillResponse(record))
	}

	s.writeJSONResponse(w, map[string]any{"skills": response})
}

// handleGetSkill handles GET /api/skills/{name}
func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	skill, ok := s.store.Snapshot().Get(name)
	if !ok {
		s.writeErrorResponse(w, http.StatusNotFound, fmt.Sprintf("skill %q not found", name), nil)
		return
	}

	response := struct {
		SkillResponse
		Content string `json:"content"`
	}{toSkillResponse(skill), skill.Content}

	s.writeJSONResponse(w, response)
}

// ResolveRequest is the body of POST /api/resolve
type ResolveRequest struct {
	Request string `json:"request"`
}

// ResolveResponse is the body returned by POST /api/resolve
type ResolveResponse struct {
	resolver.MatchResult
	Response string `json:"response"`
}

// handleResolve handles POST /api/resolve
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Request == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "request text is required", nil)
		return
	}

	registry := s.store.Snapshot()
	match := s.resolver.Resolve(registry, req.Request)

	rendered, err := respond.Render(respond.FromMatch(registry, req.Request, match))
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "failed to render response", err)
		return
	}

	s.writeJSONResponse(w, ResolveResponse{MatchResult: match, Response: rendered})
}

// handleRefresh handles POST /api/refresh: reloads the registry snapshot
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Refresh(); err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "failed to refresh registry", err)
		return
	}

	s.writeJSONResponse(w, map[string]any{
		"success": true,
		"skills":  s.store.Snapshot().Len(),
	})
}

// handleHealthz handles GET /api/healthz
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, map[string]any{
		"status": "ok",
		"skills": s.store.Snapshot().Len(),
	})
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.G(context.TODO()).WithError(err).Error("failed to encode JSON response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	if err != nil {
		logger.G(context.TODO()).WithError(err).Error(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]any{
		"error":   message,
		"status":  statusCode,
		"success": false,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.G(context.TODO()).WithError(err).Error("failed to encode error response")
	}
}

// Start starts the API server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:    address,
		Handler: s.router,
	}

	presenter.Info(fmt.Sprintf("Starting skill API server on http://%s", address))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.G(ctx).WithError(err).Error("API server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
