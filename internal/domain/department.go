package domain

import "time"

type Department struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nombre"`
	Description *string    `json:"descripcion"`
	CreatedAt   *time.Time `json:"creado_en,omitempty"`
}

func (d Department) EntityID() int64 { return d.ID }

type DepartmentInput struct {
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion"`
}
