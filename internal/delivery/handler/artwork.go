package handler

import (
	"net/http"

	"catalog-service/internal/domain"
	"catalog-service/internal/usecase"
)

func (h *Handler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	artwork, err := h.artworks.Get(r.Context(), id)
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, artwork, http.StatusOK)
}

func (h *Handler) SearchArtworks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := domain.NewSearchQuery(q.Get("keywords"), q.Get("tags"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	ids, err := h.artworks.Search(r.Context(), query)
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, ids, http.StatusOK)
}

func (h *Handler) CreateArtwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	artwork, err := h.artworks.Create(r.Context(), usecase.CreateArtworkCommand{
		Title:   q.Get("title"),
		Creator: q.Get("creator"),
		Tags:    domain.SplitList(q.Get("tags")),
	})
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, artwork, http.StatusCreated)
}

func (h *Handler) UpdateArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	q := r.URL.Query()
	artwork, err := h.artworks.Update(r.Context(), id, q.Get("key"), q.Get("type"), optional(q, "value"))
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, artwork, http.StatusOK)
}

func (h *Handler) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	artwork, err := h.artworks.Delete(r.Context(), id)
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, artwork, http.StatusOK)
}
