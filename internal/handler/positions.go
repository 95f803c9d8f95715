package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/shopspring/decimal"
)

type positionRequest struct {
	Title       string              `json:"titulo" validate:"required"`
	Description *string             `json:"descripcion"`
	SalaryMin   decimal.NullDecimal `json:"salario_min"`
	SalaryMax   decimal.NullDecimal `json:"salario_max"`
}

func (h *Handler) readPosition(w http.ResponseWriter, r *http.Request) (*positionRequest, bool) {
	var req positionRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}

	// 同时给出最低和最高薪资时，最低不能超过最高
	if req.SalaryMin.Valid && req.SalaryMax.Valid && req.SalaryMin.Decimal.GreaterThan(req.SalaryMax.Decimal) {
		h.errorResponse(w, r, http.StatusBadRequest, map[string][]string{
			"salario_max": {"El salario máximo debe ser mayor al mínimo"},
		})
		return nil, false
	}
	return &req, true
}

func (h *Handler) GetAllPositions(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	positions, err := h.repository.GetAllPositions(skip, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, positions)
}

func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Posición no encontrada")
	if !ok {
		return
	}

	p, err := h.repository.GetPositionByID(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Posición no encontrada")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, p)
}

func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readPosition(w, r)
	if !ok {
		return
	}

	p := &domain.Position{
		Title:       req.Title,
		Description: req.Description,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	}
	if err := h.repository.CreatePosition(p); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, p)
}

func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Posición no encontrada")
	if !ok {
		return
	}
	req, ok := h.readPosition(w, r)
	if !ok {
		return
	}

	p := &domain.Position{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	}
	if err := h.repository.UpdatePosition(p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Posición no encontrada")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, p)
}

func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Posición no encontrada")
	if !ok {
		return
	}

	if err := h.repository.DeletePosition(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Posición no encontrada")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Posición eliminada correctamente"})
}
