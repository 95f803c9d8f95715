package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type DepartmentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type PositionRef struct {
	ID    int64  `json:"id"`
	Title string `json:"titulo"`
}

type Employee struct {
	ID           int64           `json:"id"`
	Code         string          `json:"codigo_empleado"`
	FirstName    string          `json:"nombre"`
	LastName     string          `json:"apellido"`
	FullName     string          `json:"nombre_completo,omitempty"`
	Email        string          `json:"email"`
	Phone        *string         `json:"telefono"`
	BirthDate    *string         `json:"fecha_nacimiento"`
	HireDate     string          `json:"fecha_contratacion"`
	Salary       decimal.Decimal `json:"salario"`
	Active       bool            `json:"activo"`
	DepartmentID int64           `json:"departamento_id,omitempty"`
	PositionID   int64           `json:"Posicion_id,omitempty"`
	Department   *DepartmentRef  `json:"departamento"`
	Position     *PositionRef    `json:"Posicion"`
}

func (e Employee) EntityID() int64 { return e.ID }

// DisplayName 优先使用后端计算好的全名
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DepartmentKey 返回所属部门的 id，不论后端返回的是嵌套对象还是平铺字段
func (e Employee) DepartmentKey() int64 {
	if e.Department != nil {
		return e.Department.ID
	}
	return e.DepartmentID
}

func (e Employee) PositionKey() int64 {
	if e.Position != nil {
		return e.Position.ID
	}
	return e.PositionID
}

type EmployeeInput struct {
	Code         string          `json:"codigo_empleado"`
	FirstName    string          `json:"nombre"`
	LastName     string          `json:"apellido"`
	Email        string          `json:"email"`
	Phone        *string         `json:"telefono"`
	BirthDate    *string         `json:"fecha_nacimiento"`
	HireDate     string          `json:"fecha_contratacion"`
	Salary       decimal.Decimal `json:"salario"`
	Active       bool            `json:"activo"`
	DepartmentID int64           `json:"departamento_id"`
	PositionID   int64           `json:"Posicion_id"`
}
