package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/services/records"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/web/handler"
	"github.com/mcoot/gomemo/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger    *slog.Logger
	Records   *records.Service
	History   *history.Service
	Manager   *replay.Manager
	StaticDir string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Records, cfg.History, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.Manager, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Flash())

	// Records
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/records", homeHandler.Import).Methods(http.MethodPost)
	pages.HandleFunc("/records/{id}/delete", homeHandler.Delete).Methods(http.MethodPost)
	pages.HandleFunc("/records/{id}/sessions", sessionHandler.Create).Methods(http.MethodPost)

	// Sessions
	pages.HandleFunc("/sessions/{id}", sessionHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/sessions/{id}/study/next", sessionHandler.StudyNext).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/study/prev", sessionHandler.StudyPrev).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/replay", sessionHandler.StartReplay).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/click", sessionHandler.Click).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/pass", sessionHandler.Pass).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/reset", sessionHandler.Reset).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{id}/close", sessionHandler.Close).Methods(http.MethodPost)
}
