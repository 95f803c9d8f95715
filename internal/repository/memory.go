package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]T{}}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

// page 按 id 升序返回 [skip, skip+limit) 范围内的记录
func (t *table[T]) page(skip, limit int) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if skip > len(ids) {
		skip = len(ids)
	}
	end := len(ids)
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}

	out := make([]T, 0, end-skip)
	for _, id := range ids[skip:end] {
		out = append(out, t.rows[id])
	}
	return out
}

// MemoryRepository 把数据保存在进程内，用于测试和没有数据库的开发环境
type MemoryRepository struct {
	mu          sync.RWMutex
	users       *table[domain.User]
	departments *table[domain.Department]
	positions   *table[domain.Position]
	employees   *table[domain.Employee]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:       newTable[domain.User](),
		departments: newTable[domain.Department](),
		positions:   newTable[domain.Position](),
		employees:   newTable[domain.Employee](),
	}
}

func (r *MemoryRepository) CreateUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users.rows {
		if u.Username == user.Username {
			return &DuplicateError{Field: "username"}
		}
		if strings.EqualFold(u.Email, user.Email) {
			return &DuplicateError{Field: "email"}
		}
	}

	user.ID = r.users.nextID()
	user.IsActive = true
	r.users.rows[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUserByUsername(username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users.rows {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) GetAllDepartments(skip, limit int) ([]*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pointers(r.departments.page(skip, limit)), nil
}

func (r *MemoryRepository) GetDepartmentByID(id int64) (*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.departments, id)
}

func (r *MemoryRepository) CreateDepartment(d *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	d.ID = r.departments.nextID()
	d.CreatedAt = &now
	r.departments.rows[d.ID] = *d
	return nil
}

func (r *MemoryRepository) UpdateDepartment(d *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.departments.rows[d.ID]
	if !ok {
		return ErrNotFound
	}
	d.CreatedAt = old.CreatedAt
	r.departments.rows[d.ID] = *d
	return nil
}

func (r *MemoryRepository) DeleteDepartment(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.departments, id)
}

func (r *MemoryRepository) GetAllPositions(skip, limit int) ([]*domain.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pointers(r.positions.page(skip, limit)), nil
}

func (r *MemoryRepository) GetPositionByID(id int64) (*domain.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.positions, id)
}

func (r *MemoryRepository) CreatePosition(p *domain.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.positions.nextID()
	r.positions.rows[p.ID] = *p
	return nil
}

func (r *MemoryRepository) UpdatePosition(p *domain.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.positions.rows[p.ID]; !ok {
		return ErrNotFound
	}
	r.positions.rows[p.ID] = *p
	return nil
}

func (r *MemoryRepository) DeletePosition(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.positions, id)
}

func (r *MemoryRepository) GetAllEmployees(skip, limit int) ([]*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.employees.page(skip, limit)
	out := make([]*domain.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, r.resolve(rows[i]))
	}
	return out, nil
}

func (r *MemoryRepository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.resolve(e), nil
}

func (r *MemoryRepository) CreateEmployee(e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkEmployeeUnique(e); err != nil {
		return err
	}
	e.ID = r.employees.nextID()
	r.employees.rows[e.ID] = *e
	*e = *r.resolve(*e)
	return nil
}

func (r *MemoryRepository) UpdateEmployee(e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees.rows[e.ID]; !ok {
		return ErrNotFound
	}
	if err := r.checkEmployeeUnique(e); err != nil {
		return err
	}
	r.employees.rows[e.ID] = *e
	*e = *r.resolve(*e)
	return nil
}

func (r *MemoryRepository) DeleteEmployee(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.employees, id)
}

func (r *MemoryRepository) checkEmployeeUnique(e *domain.Employee) error {
	for id, other := range r.employees.rows {
		if id == e.ID {
			continue
		}
		if other.Code == e.Code {
			return &DuplicateError{Field: "codigo_empleado"}
		}
		if strings.EqualFold(other.Email, e.Email) {
			return &DuplicateError{Field: "email"}
		}
	}
	return nil
}

// resolve 补全全名以及部门和职位的嵌套引用，被删除的引用保持为空
func (r *MemoryRepository) resolve(e domain.Employee) *domain.Employee {
	e.FullName = strings.TrimSpace(e.FirstName + " " + e.LastName)
	e.Department = nil
	e.Position = nil
	if d, ok := r.departments.rows[e.DepartmentID]; ok {
		e.Department = &domain.DepartmentRef{ID: d.ID, Name: d.Name}
	}
	if p, ok := r.positions.rows[e.PositionID]; ok {
		e.Position = &domain.PositionRef{ID: p.ID, Title: p.Title}
	}
	return &e
}

func lookup[T any](t *table[T], id int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func remove[T any](t *table[T], id int64) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}
