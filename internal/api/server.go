// Package api exposes the form mapping and form-edit pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/agent"
	"github.com/harperhq/anvil/internal/store"
)

// FormStore is the persistence surface the handlers need. A nil store runs
// the server stateless: forms are still generated, just not recorded.
type FormStore interface {
	SaveForm(ctx context.Context, companyID, formType string, payload any) (uuid.UUID, error)
	SaveTurn(ctx context.Context, conversationID, companyID, userMessage, explanation string, updates any) (uuid.UUID, error)
	ListForms(ctx context.Context, companyID string) ([]store.FormRecord, error)
}

// Publisher emits form lifecycle events. A nil publisher is a no-op.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router    *chi.Mux
	port      int
	mapper    *acord.Mapper
	pipeline  *agent.Pipeline
	quickfill *agent.QuickFill
	db        FormStore
	events    Publisher
	logger    *slog.Logger
}

func NewServer(port int, apiToken string, mapper *acord.Mapper, pipeline *agent.Pipeline, quickfill *agent.QuickFill, db FormStore, events Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		mapper:    mapper,
		pipeline:  pipeline,
		quickfill: quickfill,
		db:        db,
		events:    events,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/anvil/status", s.status)

	router.Route("/api/v1/forms", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/acord125", s.mapForm("acord125"))
		r.Post("/acord126", s.mapForm("acord126"))
		r.Post("/generate", s.generateForm)
		r.Get("/{companyID}", s.listForms)
	})
	router.Route("/api/v1/agent", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/message", s.agentMessage)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// BearerAuthMiddleware rejects requests without the configured token. An
// empty token disables auth.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "anvil",
		"status":  "ok",
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}
