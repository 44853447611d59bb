package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/api/handler"
	"github.com/mcoot/gomemo/internal/api/middleware"
	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/services/records"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Records    *records.Service
	History    *history.Service
	Manager    *replay.Manager
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api/v1 on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	recordHandler := handler.NewRecordHandler(cfg.Records, cfg.History)
	sessionHandler := handler.NewSessionHandler(cfg.Manager, cfg.HubManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Record routes
	api.HandleFunc("/records", recordHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/records", recordHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", recordHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", recordHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/records/{id}/results", recordHandler.Results).Methods(http.MethodGet)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Close).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/study/next", sessionHandler.StudyNext).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/study/prev", sessionHandler.StudyPrev).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/replay", sessionHandler.StartReplay).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", sessionHandler.Reset).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/moves", sessionHandler.Move).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/pass", sessionHandler.Pass).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/hint", sessionHandler.Hint).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/boards/{position}", sessionHandler.Board).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/wrong-attempts/{move}", sessionHandler.WrongAttempts).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/difficult", sessionHandler.Difficult).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/stats", sessionHandler.Stats).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/events", sessionHandler.Events).Methods(http.MethodGet)
}
