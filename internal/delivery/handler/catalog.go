package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.catalog.Tag(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, tag, http.StatusOK)
}

func (h *Handler) GetCreator(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	creator, err := h.catalog.Creator(r.Context(), id)
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, creator, http.StatusOK)
}
