package handler

import (
	"net/http"
	"time"

	"catalog-service/internal/infrastructure"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	// Events serves the websocket event stream when set.
	Events         http.Handler
	StaticDir      string
	Limiter        *infrastructure.RateLimiter
	RequestTimeout time.Duration
}

func NewRouter(h *Handler, cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(h.logger))
	if cfg.Limiter != nil {
		r.Use(RateLimit(cfg.Limiter, h.logger))
	}

	api := r.NewRoute().Subrouter()
	if cfg.RequestTimeout > 0 {
		api.Use(Timeout(cfg.RequestTimeout))
	}

	api.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	// search must be registered before the {id} routes.
	api.HandleFunc("/artworks/search", h.SearchArtworks).Methods(http.MethodGet)
	api.HandleFunc("/artworks", h.CreateArtwork).Methods(http.MethodPost)
	api.HandleFunc("/artworks/{id}", h.GetArtwork).Methods(http.MethodGet)
	api.HandleFunc("/artworks/{id}", h.UpdateArtwork).Methods(http.MethodPut)
	api.HandleFunc("/artworks/{id}", h.DeleteArtwork).Methods(http.MethodDelete)

	api.HandleFunc("/users", h.RegisterUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{username}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}", h.DeleteUser).Methods(http.MethodDelete)
	api.HandleFunc("/users/{username}/lists", h.ListSummaries).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/lists/{name}", h.GetList).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/lists/{name}", h.CreateList).Methods(http.MethodPost)
	api.HandleFunc("/users/{username}/lists/{name}", h.ModifyList).Methods(http.MethodPut)
	api.HandleFunc("/users/{username}/lists/{name}", h.DeleteList).Methods(http.MethodDelete)

	api.HandleFunc("/tags/{name}", h.GetTag).Methods(http.MethodGet)
	api.HandleFunc("/creators/{id}", h.GetCreator).Methods(http.MethodGet)

	if cfg.Events != nil {
		r.Handle("/ws/events", cfg.Events).Methods(http.MethodGet)
	}
	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods(http.MethodGet, http.MethodHead)
	}
	return r
}
