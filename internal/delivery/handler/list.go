package handler

import (
	"net/http"
	"strconv"

	"catalog-service/internal/domain"
	"catalog-service/internal/usecase"

	"github.com/gorilla/mux"
)

func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.lists.Summaries(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, summaries, http.StatusOK)
}

func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.lists.Get(r.Context(), vars["username"], vars["name"])
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, list, http.StatusOK)
}

func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.lists.Create(r.Context(), vars["username"], vars["name"])
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, list, http.StatusCreated)
}

func (h *Handler) ModifyList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	q := r.URL.Query()

	action, err := usecase.ParseListAction(q.Get("action"))
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	artworkID, err := strconv.ParseInt(q.Get("artwork"), 10, 64)
	if err != nil {
		h.sendFailure(w, r, domain.Invalid("Artwork must be an integer id."), empty)
		return
	}

	list, err := h.lists.Modify(r.Context(), vars["username"], vars["name"], action, artworkID)
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, list, http.StatusOK)
}

func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.lists.Delete(r.Context(), vars["username"], vars["name"])
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, list, http.StatusOK)
}
