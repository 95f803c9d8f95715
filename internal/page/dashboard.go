package page

import (
	"context"
	"sync"

	"github.com/gestor-empleados/frontend/internal/domain"
	"golang.org/x/sync/errgroup"
)

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type Counts struct {
	Employees       int
	ActiveEmployees int
	Departments     int
	Positions       int
}

// Dashboard 是首页，同时获取三个列表，全部完成后才进入 Ready
type Dashboard struct {
	employees   Lister[domain.Employee]
	departments Lister[domain.Department]
	positions   Lister[domain.Position]

	mu       sync.Mutex
	status   Status
	counts   Counts
	loadErr  string
	disposed bool
}

func NewDashboard(employees Lister[domain.Employee], departments Lister[domain.Department], positions Lister[domain.Position]) *Dashboard {
	return &Dashboard{employees: employees, departments: departments, positions: positions}
}

func (d *Dashboard) Mount(ctx context.Context) error {
	d.mu.Lock()
	d.status = StatusLoading
	d.loadErr = ""
	d.mu.Unlock()

	var counts Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		emps, err := d.employees.List(gctx)
		if err != nil {
			return err
		}
		s := EmployeeSummary(emps)
		counts.Employees, counts.ActiveEmployees = s.Total, s.Active
		return nil
	})
	g.Go(func() error {
		depts, err := d.departments.List(gctx)
		counts.Departments = len(depts)
		return err
	})
	g.Go(func() error {
		poss, err := d.positions.List(gctx)
		counts.Positions = len(poss)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return nil
	}
	if err != nil {
		d.status = StatusFailed
		d.loadErr = err.Error()
		return err
	}
	d.status = StatusReady
	d.counts = counts
	return nil
}

func (d *Dashboard) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Dashboard) Counts() Counts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts
}

func (d *Dashboard) LoadError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadErr
}

func (d *Dashboard) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disposed = true
}
