package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/form"
)

// 部门和职位在 CSV 中以名称给出，导入时转换为 id
const (
	DepartmentColumn = "departamento"
	PositionColumn   = "posicion"
)

var requiredColumns = []string{
	"codigo_empleado", "nombre", "apellido", "email", "fecha_contratacion", "salario",
	DepartmentColumn, PositionColumn,
}

type Resource[T domain.Entity, I any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input I) (T, error)
}

type Importer struct {
	Validator   *form.Validator
	Departments Resource[domain.Department, domain.DepartmentInput]
	Positions   Resource[domain.Position, domain.PositionInput]
	Employees   Resource[domain.Employee, domain.EmployeeInput]
}

type staticList[T any] []T

func (s staticList[T]) List(context.Context) ([]T, error) { return s, nil }

// ImportEmployees 逐行读取 CSV 并通过员工表单创建员工，不存在的部门和职位会先被创建。
// 校验失败或创建失败的行会被跳过并记录日志，返回成功创建的数量
func (im *Importer) ImportEmployees(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("读取表头失败: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	for _, col := range requiredColumns {
		if !slices.Contains(headers, col) {
			return 0, fmt.Errorf("没有找到列 %s", col)
		}
	}

	departments, err := im.Departments.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("无法获取部门: %w", err)
	}
	positions, err := im.Positions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("无法获取职位: %w", err)
	}

	created := 0
	line := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return created, fmt.Errorf("读取文件失败: %w", err)
		}
		line++

		record := make(map[string]string, len(headers))
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = strings.TrimSpace(value)
			}
		}

		dept, err := im.department(ctx, &departments, record[DepartmentColumn])
		if err != nil {
			slog.Error("无法创建部门", "line", line, "error", err)
			continue
		}
		pos, err := im.position(ctx, &positions, record[PositionColumn])
		if err != nil {
			slog.Error("无法创建职位", "line", line, "error", err)
			continue
		}

		if err := im.createEmployee(ctx, record, departments, positions, dept, pos); err != nil {
			slog.Error("无法导入员工", "line", line, "error", err)
			continue
		}
		created++
	}

	slog.Info("导入员工完成", "count", created)
	return created, nil
}

func (im *Importer) createEmployee(ctx context.Context, record map[string]string, departments []domain.Department, positions []domain.Position, dept domain.Department, pos domain.Position) error {
	f := form.NewEmployeeForm(im.Validator, staticList[domain.Department](departments), staticList[domain.Position](positions), nil,
		func(ctx context.Context, input domain.EmployeeInput) error {
			_, err := im.Employees.Create(ctx, input)
			return err
		}, nil)
	if err := f.Load(ctx); err != nil {
		return err
	}

	for _, field := range form.EmployeeFields {
		value, ok := record[field]
		if !ok || value == "" {
			continue
		}
		if err := f.Set(field, value); err != nil {
			return err
		}
	}
	if err := f.Set("departamento_id", strconv.FormatInt(dept.ID, 10)); err != nil {
		return err
	}
	if err := f.Set("Posicion_id", strconv.FormatInt(pos.ID, 10)); err != nil {
		return err
	}

	return f.Submit(ctx)
}

// department 按名称（忽略大小写）查找部门，找不到时创建并加入缓存
func (im *Importer) department(ctx context.Context, cache *[]domain.Department, name string) (domain.Department, error) {
	for _, d := range *cache {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	if name == "" {
		return domain.Department{}, errors.New("departamento vacío")
	}

	d, err := im.Departments.Create(ctx, domain.DepartmentInput{Name: name})
	if err != nil {
		return domain.Department{}, err
	}
	*cache = append(*cache, d)
	return d, nil
}

func (im *Importer) position(ctx context.Context, cache *[]domain.Position, title string) (domain.Position, error) {
	for _, p := range *cache {
		if strings.EqualFold(p.Title, title) {
			return p, nil
		}
	}
	if title == "" {
		return domain.Position{}, errors.New("posición vacía")
	}

	p, err := im.Positions.Create(ctx, domain.PositionInput{Title: title})
	if err != nil {
		return domain.Position{}, err
	}
	*cache = append(*cache, p)
	return p, nil
}
