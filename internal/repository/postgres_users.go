package repository

import "github.com/gestor-empleados/frontend/internal/domain"

func (r *PostgresRepository) CreateUser(user *domain.User) error {
	ctx, cancel := r.ctx()
	defer cancel()

	query := `
		INSERT INTO users (username, email, full_name, password_hash, is_superuser)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active
	`

	args := []any{user.Username, user.Email, user.FullName, user.PasswordHash, user.IsSuperuser}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive); err != nil {
		return translate(err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_active, is_superuser
		FROM users WHERE username = $1
	`

	ctx, cancel := r.ctx()
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.IsActive, &user.IsSuperuser}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, translate(err)
	}

	return user, nil
}
