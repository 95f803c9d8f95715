package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type EmployeeDraft struct {
	Code         string `form:"codigo_empleado" validate:"required"`
	FirstName    string `form:"nombre" validate:"required"`
	LastName     string `form:"apellido" validate:"required"`
	Email        string `form:"email" validate:"required,email"`
	Phone        string `form:"telefono"`
	BirthDate    string `form:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	HireDate     string `form:"fecha_contratacion" validate:"required,datetime=2006-01-02"`
	Salary       string `form:"salario" validate:"required,positive"`
	Active       bool   `form:"activo"`
	DepartmentID int64  `form:"departamento_id" validate:"required"`
	PositionID   int64  `form:"Posicion_id" validate:"required"`
}

// EmployeeFields 是员工表单可编辑的字段，顺序与界面一致
var EmployeeFields = []string{
	"codigo_empleado", "nombre", "apellido", "email", "telefono", "fecha_nacimiento",
	"fecha_contratacion", "salario", "activo", "departamento_id", "Posicion_id",
}

// ErrStillLoading 表示下拉选项还在加载，表单处于阻塞状态
var ErrStillLoading = errors.New("el formulario todavía se está cargando")

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type EmployeeForm struct {
	*Form[domain.Employee, EmployeeDraft, domain.EmployeeInput]

	departments Lister[domain.Department]
	positions   Lister[domain.Position]

	loadMu      sync.Mutex
	loading     bool
	deptOptions []domain.Department
	posOptions  []domain.Position
	loadErr     error
}

func NewEmployeeForm(v *Validator, departments Lister[domain.Department], positions Lister[domain.Position], existing *domain.Employee, onSubmit SubmitFunc[domain.EmployeeInput], onCancel func()) *EmployeeForm {
	return &EmployeeForm{
		Form:        newForm(v, employeeSchema, existing, onSubmit, onCancel),
		departments: departments,
		positions:   positions,
		loading:     true,
	}
}

// Load 并行获取部门和职位列表。失败时选项保持为空，表单依旧可用
func (f *EmployeeForm) Load(ctx context.Context) error {
	var depts []domain.Department
	var poss []domain.Position

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		depts, err = f.departments.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		poss, err = f.positions.List(gctx)
		return err
	})
	err := g.Wait()

	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	f.loading = false
	f.loadErr = err
	if err != nil {
		slog.Warn("无法加载表单数据", "error", err)
		return err
	}
	f.deptOptions = depts
	f.posOptions = poss
	return nil
}

func (f *EmployeeForm) Loading() bool {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return f.loading
}

func (f *EmployeeForm) LoadError() error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return f.loadErr
}

func (f *EmployeeForm) Departments() []domain.Department {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return append([]domain.Department(nil), f.deptOptions...)
}

func (f *EmployeeForm) Positions() []domain.Position {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return append([]domain.Position(nil), f.posOptions...)
}

func (f *EmployeeForm) Submit(ctx context.Context) error {
	if f.Loading() {
		return ErrStillLoading
	}
	return f.Form.Submit(ctx)
}

var employeeSchema = schema[domain.Employee, EmployeeDraft, domain.EmployeeInput]{
	draftOf: func(e *domain.Employee) EmployeeDraft {
		if e == nil {
			return EmployeeDraft{Active: true}
		}
		d := EmployeeDraft{
			Code:         e.Code,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Email:        e.Email,
			HireDate:     e.HireDate,
			Active:       e.Active,
			DepartmentID: e.DepartmentKey(),
			PositionID:   e.PositionKey(),
		}
		if e.Phone != nil {
			d.Phone = *e.Phone
		}
		if e.BirthDate != nil {
			d.BirthDate = *e.BirthDate
		}
		if !e.Salary.IsZero() {
			d.Salary = e.Salary.String()
		}
		return d
	},
	normalize: func(d EmployeeDraft) EmployeeDraft {
		d.Code = strings.TrimSpace(d.Code)
		d.FirstName = strings.TrimSpace(d.FirstName)
		d.LastName = strings.TrimSpace(d.LastName)
		d.Email = strings.TrimSpace(d.Email)
		d.Phone = strings.TrimSpace(d.Phone)
		d.BirthDate = strings.TrimSpace(d.BirthDate)
		d.HireDate = strings.TrimSpace(d.HireDate)
		d.Salary = strings.TrimSpace(d.Salary)
		return d
	},
	set: func(d *EmployeeDraft, field, value string) error {
		switch field {
		case "codigo_empleado":
			d.Code = value
		case "nombre":
			d.FirstName = value
		case "apellido":
			d.LastName = value
		case "email":
			d.Email = value
		case "telefono":
			d.Phone = value
		case "fecha_nacimiento":
			d.BirthDate = value
		case "fecha_contratacion":
			d.HireDate = value
		case "salario":
			d.Salary = value
		case "activo":
			active, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("activo: %w", err)
			}
			d.Active = active
		case "departamento_id":
			return setID(&d.DepartmentID, field, value)
		case "Posicion_id":
			return setID(&d.PositionID, field, value)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		return nil
	},
	input: func(d EmployeeDraft) domain.EmployeeInput {
		salary, _ := decimal.NewFromString(d.Salary)
		return domain.EmployeeInput{
			Code:         d.Code,
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			Email:        d.Email,
			Phone:        optional(d.Phone),
			BirthDate:    optional(d.BirthDate),
			HireDate:     d.HireDate,
			Salary:       salary,
			Active:       d.Active,
			DepartmentID: d.DepartmentID,
			PositionID:   d.PositionID,
		}
	},
	fallback: "Error al guardar el empleado",
}

// setID 把空字符串当作未选择
func setID(dst *int64, field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = 0
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = id
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
