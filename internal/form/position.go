package form

import (
	"fmt"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/shopspring/decimal"
)

type PositionDraft struct {
	Title       string `form:"titulo" validate:"required"`
	Description string `form:"descripcion"`
	SalaryMin   string `form:"salario_min" validate:"omitempty,nonnegative"`
	SalaryMax   string `form:"salario_max" validate:"omitempty,nonnegative"`
}

var PositionFields = []string{"titulo", "descripcion", "salario_min", "salario_max"}

type PositionForm struct {
	*Form[domain.Position, PositionDraft, domain.PositionInput]
}

func NewPositionForm(v *Validator, existing *domain.Position, onSubmit SubmitFunc[domain.PositionInput], onCancel func()) *PositionForm {
	return &PositionForm{Form: newForm(v, positionSchema, existing, onSubmit, onCancel)}
}

var positionSchema = schema[domain.Position, PositionDraft, domain.PositionInput]{
	draftOf: func(p *domain.Position) PositionDraft {
		if p == nil {
			return PositionDraft{}
		}
		draft := PositionDraft{Title: p.Title}
		if p.Description != nil {
			draft.Description = *p.Description
		}
		if p.SalaryMin.Valid {
			draft.SalaryMin = p.SalaryMin.Decimal.String()
		}
		if p.SalaryMax.Valid {
			draft.SalaryMax = p.SalaryMax.Decimal.String()
		}
		return draft
	},
	normalize: func(d PositionDraft) PositionDraft {
		d.Title = strings.TrimSpace(d.Title)
		d.Description = strings.TrimSpace(d.Description)
		d.SalaryMin = strings.TrimSpace(d.SalaryMin)
		d.SalaryMax = strings.TrimSpace(d.SalaryMax)
		return d
	},
	set: func(d *PositionDraft, field, value string) error {
		switch field {
		case "titulo":
			d.Title = value
		case "descripcion":
			d.Description = value
		case "salario_min":
			d.SalaryMin = value
		case "salario_max":
			d.SalaryMax = value
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		return nil
	},
	input: func(d PositionDraft) domain.PositionInput {
		return domain.PositionInput{
			Title:       d.Title,
			Description: optional(d.Description),
			SalaryMin:   optionalDecimal(d.SalaryMin),
			SalaryMax:   optionalDecimal(d.SalaryMax),
		}
	},
	fallback: "Error al guardar la posición",
}

func optionalDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
