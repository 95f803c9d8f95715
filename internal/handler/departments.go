package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/repository"
)

type departmentRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Description *string `json:"descripcion"`
}

func (h *Handler) readDepartment(w http.ResponseWriter, r *http.Request) (*departmentRequest, bool) {
	var req departmentRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	return &req, true
}

func (h *Handler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	departments, err := h.repository.GetAllDepartments(skip, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, departments)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Departamento no encontrado")
	if !ok {
		return
	}

	d, err := h.repository.GetDepartmentByID(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Departamento no encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, d)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readDepartment(w, r)
	if !ok {
		return
	}

	d := &domain.Department{Name: req.Name, Description: req.Description}
	if err := h.repository.CreateDepartment(d); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, d)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Departamento no encontrado")
	if !ok {
		return
	}
	req, ok := h.readDepartment(w, r)
	if !ok {
		return
	}

	d := &domain.Department{ID: id, Name: req.Name, Description: req.Description}
	if err := h.repository.UpdateDepartment(d); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Departamento no encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Departamento no encontrado")
	if !ok {
		return
	}

	if err := h.repository.DeleteDepartment(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Departamento no encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Departamento eliminado correctamente"})
}
