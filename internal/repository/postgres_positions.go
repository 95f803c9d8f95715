package repository

import "github.com/gestor-empleados/frontend/internal/domain"

func (r *PostgresRepository) GetAllPositions(skip, limit int) ([]*domain.Position, error) {
	query := `
		SELECT id, titulo, descripcion, salario_min, salario_max FROM posiciones
		ORDER BY id OFFSET $1 LIMIT $2
	`

	ctx, cancel := r.ctx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]*domain.Position, 0)
	for rows.Next() {
		p := &domain.Position{}
		dst := []any{&p.ID, &p.Title, &p.Description, &p.SalaryMin, &p.SalaryMax}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}

func (r *PostgresRepository) GetPositionByID(id int64) (*domain.Position, error) {
	query := `
		SELECT titulo, descripcion, salario_min, salario_max FROM posiciones WHERE id = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	p := &domain.Position{ID: id}
	dst := []any{&p.Title, &p.Description, &p.SalaryMin, &p.SalaryMax}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, translate(err)
	}

	return p, nil
}

func (r *PostgresRepository) CreatePosition(p *domain.Position) error {
	query := `
		INSERT INTO posiciones (titulo, descripcion, salario_min, salario_max)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := r.ctx()
	defer cancel()

	args := []any{p.Title, p.Description, p.SalaryMin, p.SalaryMax}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return translate(err)
	}

	return nil
}

func (r *PostgresRepository) UpdatePosition(p *domain.Position) error {
	query := `
		UPDATE posiciones SET titulo = $1, descripcion = $2, salario_min = $3, salario_max = $4
		WHERE id = $5
	`

	ctx, cancel := r.ctx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, p.Title, p.Description, p.SalaryMin, p.SalaryMax, p.ID)
	if err != nil {
		return translate(err)
	}

	return expectOne(res)
}

func (r *PostgresRepository) DeletePosition(id int64) error {
	query := `
		DELETE FROM posiciones WHERE id = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectOne(res)
}
