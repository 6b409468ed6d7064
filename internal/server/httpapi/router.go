package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/raai2005/form-builder-app/internal/server/config"
	"github.com/raai2005/form-builder-app/internal/server/service"
)

type Router struct {
	services        *service.Services
	logger          *log.Logger
	maxRequestBytes int64
	frontendURL     string
}

func NewRouter(services *service.Services, logger *log.Logger, cfg config.Config) http.Handler {
	r := &Router{
		services:        services,
		logger:          logger,
		maxRequestBytes: cfg.MaxRequestBytes,
		frontendURL:     cfg.CORSOrigin,
	}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(r.recoverMiddleware)

	mux.Get("/", r.handleIndex)
	mux.Get("/health", r.handleHealth)

	mux.Post("/api/auth/register", r.handleRegister)
	mux.Post("/api/auth/login", r.handleLogin)

	// Public: form submission and the OAuth provider redirect.
	mux.Post("/api/responses/{formId}", r.handleSubmitResponse)
	mux.Get("/api/airtable/callback", r.handleAirtableCallback)

	mux.Group(func(pr chi.Router) {
		pr.Use(r.authMiddleware)
		pr.Get("/api/auth/me", r.handleMe)

		pr.Get("/api/forms", r.handleListForms)
		pr.Post("/api/forms", r.handleCreateForm)
		pr.Get("/api/forms/{id}", r.handleGetForm)
		pr.Put("/api/forms/{id}", r.handleUpdateForm)
		pr.Delete("/api/forms/{id}", r.handleDeleteForm)
		pr.Post("/api/forms/{id}/views", r.handleIncrementViews)

		pr.Get("/api/responses/form/{formId}", r.handleListResponses)
		pr.Get("/api/responses/{id}", r.handleGetResponse)
		pr.Delete("/api/responses/{id}", r.handleDeleteResponse)

		pr.Get("/api/airtable/connect", r.handleAirtableConnect)
		pr.Get("/api/airtable/status", r.handleAirtableStatus)
		pr.Post("/api/airtable/disconnect", r.handleAirtableDisconnect)
	})

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
	})

	return mux
}

func (r *Router) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "FormBuilder API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":      "/api/auth",
			"forms":     "/api/forms",
			"responses": "/api/responses",
		},
	})
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
