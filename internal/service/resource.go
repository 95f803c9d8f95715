package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/domain"
)

// Resource 是某一类实体的 CRUD 门面，每次调用都直接访问后端，不做缓存
type Resource[T domain.Entity, I any] struct {
	client *apiclient.Client
	path   string
}

func NewResource[T domain.Entity, I any](client *apiclient.Client, path string) *Resource[T, I] {
	return &Resource[T, I]{client: client, path: path}
}

func NewEmployees(client *apiclient.Client) *Resource[domain.Employee, domain.EmployeeInput] {
	return NewResource[domain.Employee, domain.EmployeeInput](client, "/employees")
}

func NewDepartments(client *apiclient.Client) *Resource[domain.Department, domain.DepartmentInput] {
	return NewResource[domain.Department, domain.DepartmentInput](client, "/departments")
}

func NewPositions(client *apiclient.Client) *Resource[domain.Position, domain.PositionInput] {
	return NewResource[domain.Position, domain.PositionInput](client, "/positions")
}

func (r *Resource[T, I]) Path() string {
	return r.path
}

func (r *Resource[T, I]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.EntityID() == 0 {
			return nil, fmt.Errorf("%w: %s[%d] has no id", apiclient.ErrMalformedResponse, r.path, i)
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T, I]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return item, err
	}
	return item, r.check(item)
}

func (r *Resource[T, I]) Create(ctx context.Context, input I) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPost, r.path, input, &item); err != nil {
		return item, err
	}
	return item, r.check(item)
}

func (r *Resource[T, I]) Update(ctx context.Context, id int64, input I) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), input, &item); err != nil {
		return item, err
	}
	return item, r.check(item)
}

func (r *Resource[T, I]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T, I]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// check 在边界上拒绝没有 id 的记录，后续按 id 替换和删除都依赖它
func (r *Resource[T, I]) check(item T) error {
	if item.EntityID() == 0 {
		return fmt.Errorf("%w: %s record has no id", apiclient.ErrMalformedResponse, r.path)
	}
	return nil
}
