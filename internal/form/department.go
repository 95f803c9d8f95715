package form

import (
	"fmt"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type DepartmentDraft struct {
	Name        string `form:"nombre" validate:"required"`
	Description string `form:"descripcion"`
}

var DepartmentFields = []string{"nombre", "descripcion"}

type DepartmentForm struct {
	*Form[domain.Department, DepartmentDraft, domain.DepartmentInput]
}

func NewDepartmentForm(v *Validator, existing *domain.Department, onSubmit SubmitFunc[domain.DepartmentInput], onCancel func()) *DepartmentForm {
	return &DepartmentForm{Form: newForm(v, departmentSchema, existing, onSubmit, onCancel)}
}

var departmentSchema = schema[domain.Department, DepartmentDraft, domain.DepartmentInput]{
	draftOf: func(d *domain.Department) DepartmentDraft {
		if d == nil {
			return DepartmentDraft{}
		}
		draft := DepartmentDraft{Name: d.Name}
		if d.Description != nil {
			draft.Description = *d.Description
		}
		return draft
	},
	normalize: func(d DepartmentDraft) DepartmentDraft {
		d.Name = strings.TrimSpace(d.Name)
		d.Description = strings.TrimSpace(d.Description)
		return d
	},
	set: func(d *DepartmentDraft, field, value string) error {
		switch field {
		case "nombre":
			d.Name = value
		case "descripcion":
			d.Description = value
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		return nil
	},
	input: func(d DepartmentDraft) domain.DepartmentInput {
		return domain.DepartmentInput{
			Name:        d.Name,
			Description: optional(d.Description),
		}
	},
	fallback: "Error al guardar el departamento",
}
