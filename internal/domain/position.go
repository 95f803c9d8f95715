package domain

import "github.com/shopspring/decimal"

type Position struct {
	ID          int64               `json:"id"`
	Title       string              `json:"titulo"`
	Description *string             `json:"descripcion"`
	SalaryMin   decimal.NullDecimal `json:"salario_min"`
	SalaryMax   decimal.NullDecimal `json:"salario_max"`
}

func (p Position) EntityID() int64 { return p.ID }

type PositionInput struct {
	Title       string              `json:"titulo"`
	Description *string             `json:"descripcion"`
	SalaryMin   decimal.NullDecimal `json:"salario_min"`
	SalaryMax   decimal.NullDecimal `json:"salario_max"`
}
