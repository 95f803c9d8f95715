package repository

import (
	"errors"
	"fmt"

	"github.com/gestor-empleados/frontend/internal/domain"
)

var ErrNotFound = errors.New("registro no encontrado")

// DuplicateError 表示违反了唯一约束，Field 是冲突的字段
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s ya está registrado", e.Field)
}

// Repository 是开发用后端的数据访问层，有内存和 PostgreSQL 两种实现
type Repository interface {
	CreateUser(user *domain.User) error
	GetUserByUsername(username string) (*domain.User, error)

	GetAllDepartments(skip, limit int) ([]*domain.Department, error)
	GetDepartmentByID(id int64) (*domain.Department, error)
	CreateDepartment(d *domain.Department) error
	UpdateDepartment(d *domain.Department) error
	DeleteDepartment(id int64) error

	GetAllPositions(skip, limit int) ([]*domain.Position, error)
	GetPositionByID(id int64) (*domain.Position, error)
	CreatePosition(p *domain.Position) error
	UpdatePosition(p *domain.Position) error
	DeletePosition(id int64) error

	GetAllEmployees(skip, limit int) ([]*domain.Employee, error)
	GetEmployeeByID(id int64) (*domain.Employee, error)
	CreateEmployee(e *domain.Employee) error
	UpdateEmployee(e *domain.Employee) error
	DeleteEmployee(id int64) error
}
