package repository

import "github.com/gestor-empleados/frontend/internal/domain"

func (r *PostgresRepository) GetAllDepartments(skip, limit int) ([]*domain.Department, error) {
	query := `
		SELECT id, nombre, descripcion, creado_en FROM departamentos
		ORDER BY id OFFSET $1 LIMIT $2
	`

	ctx, cancel := r.ctx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		d := &domain.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

func (r *PostgresRepository) GetDepartmentByID(id int64) (*domain.Department, error) {
	query := `
		SELECT nombre, descripcion, creado_en FROM departamentos WHERE id = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	d := &domain.Department{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&d.Name, &d.Description, &d.CreatedAt); err != nil {
		return nil, translate(err)
	}

	return d, nil
}

func (r *PostgresRepository) CreateDepartment(d *domain.Department) error {
	query := `
		INSERT INTO departamentos (nombre, descripcion)
		VALUES ($1, $2)
		RETURNING id, creado_en
	`

	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name, d.Description).Scan(&d.ID, &d.CreatedAt); err != nil {
		return translate(err)
	}

	return nil
}

func (r *PostgresRepository) UpdateDepartment(d *domain.Department) error {
	query := `
		UPDATE departamentos SET nombre = $1, descripcion = $2
		WHERE id = $3
		RETURNING creado_en
	`

	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name, d.Description, d.ID).Scan(&d.CreatedAt); err != nil {
		return translate(err)
	}

	return nil
}

func (r *PostgresRepository) DeleteDepartment(id int64) error {
	query := `
		DELETE FROM departamentos WHERE id = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectOne(res)
}
