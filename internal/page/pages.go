package page

import (
	"log/slog"
	"time"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type (
	EmployeesPage   = ListPage[domain.Employee, domain.EmployeeInput]
	DepartmentsPage = ListPage[domain.Department, domain.DepartmentInput]
	PositionsPage   = ListPage[domain.Position, domain.PositionInput]
)

// Settings 是三个列表页共用的界面配置
type Settings struct {
	NoticeDuration time.Duration
	CreateMode     CreateMode
	Logger         *slog.Logger
}

func NewEmployeesPage(resource Resource[domain.Employee, domain.EmployeeInput], s Settings) *EmployeesPage {
	return NewListPage(resource, Options[domain.Employee]{
		Title: "Empleados",
		Messages: Messages{
			Created:     "Empleado creado correctamente",
			Updated:     "Empleado actualizado correctamente",
			Deleted:     "Empleado eliminado correctamente",
			DeleteError: "Error al eliminar",
			Confirm:     "¿Está seguro de eliminar a %s?",
		},
		NoticeDuration: s.NoticeDuration,
		CreateMode:     s.CreateMode,
		Label:          func(e domain.Employee) string { return e.DisplayName() },
		Summarize:      EmployeeSummary,
		Logger:         s.Logger,
	})
}

func NewDepartmentsPage(resource Resource[domain.Department, domain.DepartmentInput], s Settings) *DepartmentsPage {
	return NewListPage(resource, Options[domain.Department]{
		Title: "Departamentos",
		Messages: Messages{
			Created:     "Departamento creado correctamente",
			Updated:     "Departamento actualizado correctamente",
			Deleted:     "Departamento eliminado correctamente",
			DeleteError: "Error al eliminar",
			Confirm:     "¿Está seguro de eliminar el departamento %s?",
		},
		NoticeDuration: s.NoticeDuration,
		CreateMode:     s.CreateMode,
		Label:          func(d domain.Department) string { return d.Name },
		Logger:         s.Logger,
	})
}

func NewPositionsPage(resource Resource[domain.Position, domain.PositionInput], s Settings) *PositionsPage {
	return NewListPage(resource, Options[domain.Position]{
		Title: "Posiciones",
		Messages: Messages{
			Created:     "Posición creada correctamente",
			Updated:     "Posición actualizada correctamente",
			Deleted:     "Posición eliminada correctamente",
			DeleteError: "Error al eliminar",
			Confirm:     "¿Está seguro de eliminar la posición %s?",
		},
		NoticeDuration: s.NoticeDuration,
		CreateMode:     s.CreateMode,
		Label:          func(p domain.Position) string { return p.Title },
		Logger:         s.Logger,
	})
}
