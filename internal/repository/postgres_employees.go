package repository

import (
	"database/sql"
	"strings"

	"github.com/gestor-empleados/frontend/internal/domain"
)

const employeeColumns = `
	e.id, e.codigo_empleado, e.nombre, e.apellido, e.email, e.telefono,
	e.fecha_nacimiento::text, e.fecha_contratacion::text, e.salario, e.activo,
	d.id, d.nombre, p.id, p.titulo
`

const employeeFrom = `
	FROM empleados e
	LEFT JOIN departamentos d ON d.id = e.departamento_id
	LEFT JOIN posiciones p ON p.id = e.posicion_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	e := &domain.Employee{}
	var deptID, posID sql.NullInt64
	var deptName, posTitle sql.NullString

	dst := []any{
		&e.ID, &e.Code, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.BirthDate, &e.HireDate, &e.Salary, &e.Active,
		&deptID, &deptName, &posID, &posTitle,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	e.FullName = strings.TrimSpace(e.FirstName + " " + e.LastName)
	if deptID.Valid {
		e.DepartmentID = deptID.Int64
		e.Department = &domain.DepartmentRef{ID: deptID.Int64, Name: deptName.String}
	}
	if posID.Valid {
		e.PositionID = posID.Int64
		e.Position = &domain.PositionRef{ID: posID.Int64, Title: posTitle.String}
	}
	return e, nil
}

func (r *PostgresRepository) GetAllEmployees(skip, limit int) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + employeeFrom + ` ORDER BY e.id OFFSET $1 LIMIT $2`

	ctx, cancel := r.ctx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *PostgresRepository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.id = $1`

	ctx, cancel := r.ctx()
	defer cancel()

	e, err := scanEmployee(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}

	return e, nil
}

func (r *PostgresRepository) CreateEmployee(e *domain.Employee) error {
	query := `
		INSERT INTO empleados (codigo_empleado, nombre, apellido, email, telefono, fecha_nacimiento,
			fecha_contratacion, salario, activo, departamento_id, posicion_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, employeeArgs(e)...).Scan(&e.ID); err != nil {
		return translate(err)
	}

	return r.reload(e)
}

func (r *PostgresRepository) UpdateEmployee(e *domain.Employee) error {
	query := `
		UPDATE empleados SET codigo_empleado = $1, nombre = $2, apellido = $3, email = $4, telefono = $5,
			fecha_nacimiento = $6, fecha_contratacion = $7, salario = $8, activo = $9,
			departamento_id = $10, posicion_id = $11
		WHERE id = $12
	`

	ctx, cancel := r.ctx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, append(employeeArgs(e), e.ID)...)
	if err != nil {
		return translate(err)
	}
	if err := expectOne(res); err != nil {
		return err
	}

	return r.reload(e)
}

func (r *PostgresRepository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM empleados WHERE id = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectOne(res)
}

// reload 重新读取一次，以便带上全名和嵌套的部门、职位
func (r *PostgresRepository) reload(e *domain.Employee) error {
	fresh, err := r.GetEmployeeByID(e.ID)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

func employeeArgs(e *domain.Employee) []any {
	return []any{
		e.Code, e.FirstName, e.LastName, e.Email, e.Phone, e.BirthDate,
		e.HireDate, e.Salary, e.Active, e.DepartmentID, e.PositionID,
	}
}
