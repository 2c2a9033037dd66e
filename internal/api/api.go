package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/LabelWise-io/labelwise/internal/analyzer"
	"github.com/LabelWise-io/labelwise/internal/auth"
	"github.com/LabelWise-io/labelwise/internal/config"
	"github.com/LabelWise-io/labelwise/internal/storage"
	"github.com/LabelWise-io/labelwise/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Api struct {
	Config   config.Config
	Store    *store.Store
	Tokens   *auth.TokenManager
	Analyzer analyzer.ImageAnalyzer
	Archive  *storage.ArchiveClient // nil when archival is not configured
	Router   *chi.Mux
}

// NewApi wires the handlers onto a router. archive may be nil.
func NewApi(cfg config.Config, st *store.Store, tokens *auth.TokenManager, an analyzer.ImageAnalyzer, archive *storage.ArchiveClient) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("Must have at least a port to start API")
	}

	api := &Api{
		Config:   cfg,
		Store:    st,
		Tokens:   tokens,
		Analyzer: an,
		Archive:  archive,
		Router:   chi.NewRouter(),
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	// CORS is wide open; the browser frontend is served from an arbitrary
	// origin during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Public routes
	r.Get("/", api.Home)
	r.Get("/heartbeat", api.Heartbeat)
	r.Post("/signup", api.SignupHandler)
	r.Post("/login", api.LoginHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(api.BearerAuthMiddleware)
		r.Post("/analyze", api.AnalyzeHandler)
		r.Get("/analyses", api.ListAnalysesHandler)
	})
}

func (api *Api) Serve() {
	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Printf("Starting API server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router))
}

// Home reports liveness and the model in use.
func (api *Api) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "online",
		"model":  api.Config.Gemini.Model,
	})
}

func (api *Api) Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
