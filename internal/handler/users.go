package handler

import (
	"errors"
	"net/http"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Registration

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(passwordHash),
	}
	if err := h.repository.CreateUser(user); err != nil {
		var dupErr *repository.DuplicateError
		switch {
		case errors.As(err, &dupErr) && dupErr.Field == "username":
			h.errorResponse(w, r, http.StatusBadRequest, "El nombre de usuario ya está registrado")
		case errors.As(err, &dupErr) && dupErr.Field == "email":
			h.errorResponse(w, r, http.StatusBadRequest, "El email ya está registrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusCreated, user)
}
