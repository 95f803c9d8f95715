package handler

import (
	"net/http"

	"github.com/gestor-empleados/frontend/internal/domain"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	h.writeJSON(w, r, http.StatusOK, user)
}
