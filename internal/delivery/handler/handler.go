package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"catalog-service/internal/domain"
	"catalog-service/internal/usecase"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

type Handler struct {
	artworks *usecase.ArtworkUsecase
	users    *usecase.UserUsecase
	lists    *usecase.ListUsecase
	catalog  *usecase.CatalogUsecase
	logger   *log.Logger
}

func NewHandler(
	artworks *usecase.ArtworkUsecase,
	users *usecase.UserUsecase,
	lists *usecase.ListUsecase,
	catalog *usecase.CatalogUsecase,
	logger *log.Logger,
) *Handler {
	return &Handler{
		artworks: artworks,
		users:    users,
		lists:    lists,
		catalog:  catalog,
		logger:   logger,
	}
}

// errorResponse is the body of every rejected request.
type errorResponse struct {
	Error string `json:"error"`
}

// empty is written for mutations whose target does not exist.
var empty = struct{}{}

// writeJSON is shared by handlers and middleware so every body is encoded
// and failures logged the same way.
func writeJSON(w http.ResponseWriter, logger *log.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to write response", "err", err)
	}
}

func (h *Handler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, h.logger, data, statusCode)
}

func (h *Handler) sendJSONError(w http.ResponseWriter, reason string, statusCode int) {
	h.sendJSON(w, errorResponse{Error: reason}, statusCode)
}

// sendFailure maps a usecase error onto the response. Store failures are
// logged with their cause and reported without detail.
func (h *Handler) sendFailure(w http.ResponseWriter, r *http.Request, err error, notFound interface{}) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.sendJSONError(w, domain.Reason(err), http.StatusBadRequest)
	case errors.Is(err, domain.ErrConflict):
		h.sendJSONError(w, domain.Reason(err), http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound):
		h.sendJSON(w, notFound, http.StatusNotFound)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		h.sendJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

// optional returns nil when the query parameter is absent, which differs
// from an explicitly empty value.
func optional(q url.Values, key string) *string {
	values, ok := q[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func pathInt(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, domain.Invalid("Id must be an integer.")
	}
	return id, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
