package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/shopspring/decimal"
)

type employeeRequest struct {
	Code         string          `json:"codigo_empleado" validate:"required"`
	FirstName    string          `json:"nombre" validate:"required"`
	LastName     string          `json:"apellido" validate:"required"`
	Email        string          `json:"email" validate:"required,email"`
	Phone        *string         `json:"telefono"`
	BirthDate    *string         `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	HireDate     string          `json:"fecha_contratacion" validate:"required,datetime=2006-01-02"`
	Salary       decimal.Decimal `json:"salario"`
	Active       *bool           `json:"activo"`
	DepartmentID int64           `json:"departamento_id" validate:"required"`
	PositionID   int64           `json:"Posicion_id" validate:"required"`
}

// readEmployee 解析并校验请求体，同时确认引用的部门和职位存在
func (h *Handler) readEmployee(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	var req employeeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	req.Code = strings.TrimSpace(req.Code)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	if !req.Salary.IsPositive() {
		h.errorResponse(w, r, http.StatusBadRequest, map[string][]string{
			"salario": {"El salario debe ser mayor a 0"},
		})
		return nil, false
	}

	if _, err := h.repository.GetDepartmentByID(req.DepartmentID); err != nil {
		h.referenceError(w, r, err, "departamento_id", "Departamento no encontrado")
		return nil, false
	}
	if _, err := h.repository.GetPositionByID(req.PositionID); err != nil {
		h.referenceError(w, r, err, "Posicion_id", "Posición no encontrada")
		return nil, false
	}

	e := &domain.Employee{
		Code:         req.Code,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
		HireDate:     req.HireDate,
		Salary:       req.Salary,
		Active:       req.Active == nil || *req.Active,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
	}
	return e, true
}

func (h *Handler) referenceError(w http.ResponseWriter, r *http.Request, err error, field, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.errorResponse(w, r, http.StatusBadRequest, map[string][]string{field: {msg}})
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) duplicateEmployee(w http.ResponseWriter, r *http.Request, err error) bool {
	var dupErr *repository.DuplicateError
	if !errors.As(err, &dupErr) {
		return false
	}
	h.errorResponse(w, r, http.StatusBadRequest, map[string][]string{
		dupErr.Field: {dupErr.Error()},
	})
	return true
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	employees, err := h.repository.GetAllEmployees(skip, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "empleado no encontrado")
	if !ok {
		return
	}

	e, err := h.repository.GetEmployeeByID(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "empleado no encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := h.readEmployee(w, r)
	if !ok {
		return
	}

	if err := h.repository.CreateEmployee(e); err != nil {
		if !h.duplicateEmployee(w, r, err) {
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "empleado no encontrado")
	if !ok {
		return
	}
	e, ok := h.readEmployee(w, r)
	if !ok {
		return
	}

	e.ID = id
	if err := h.repository.UpdateEmployee(e); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "empleado no encontrado")
		case h.duplicateEmployee(w, r, err):
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "Empleado no encontrado")
	if !ok {
		return
	}

	if err := h.repository.DeleteEmployee(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.notFound(w, r, "Empleado no encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Empleado eliminado correctamente"})
}
