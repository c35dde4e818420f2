package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

type registerResponse struct {
	Username string `json:"username"`
	Created  bool   `json:"created"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, err := h.users.Register(r.Context(), q.Get("username"), q.Get("password"))
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, registerResponse{Username: user.Username, Created: true}, http.StatusCreated)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.sendFailure(w, r, err, nil)
		return
	}
	h.sendJSON(w, user, http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.sendFailure(w, r, err, empty)
		return
	}
	h.sendJSON(w, user, http.StatusOK)
}
