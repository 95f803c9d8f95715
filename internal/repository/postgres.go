package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(255) NOT NULL,
	full_name VARCHAR(255),
	password_hash TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
	CONSTRAINT users_username_key UNIQUE (username)
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS departamentos (
	id BIGSERIAL PRIMARY KEY,
	nombre VARCHAR(255) NOT NULL,
	descripcion TEXT,
	creado_en TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS posiciones (
	id BIGSERIAL PRIMARY KEY,
	titulo VARCHAR(255) NOT NULL,
	descripcion TEXT,
	salario_min NUMERIC(10, 2),
	salario_max NUMERIC(10, 2)
);

CREATE TABLE IF NOT EXISTS empleados (
	id BIGSERIAL PRIMARY KEY,
	codigo_empleado VARCHAR(50) NOT NULL,
	nombre VARCHAR(255) NOT NULL,
	apellido VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	telefono VARCHAR(50),
	fecha_nacimiento DATE,
	fecha_contratacion DATE NOT NULL,
	salario NUMERIC(10, 2) NOT NULL,
	activo BOOLEAN NOT NULL DEFAULT TRUE,
	departamento_id BIGINT REFERENCES departamentos (id) ON DELETE SET NULL,
	posicion_id BIGINT REFERENCES posiciones (id) ON DELETE SET NULL,
	CONSTRAINT empleados_codigo_empleado_key UNIQUE (codigo_empleado),
	CONSTRAINT empleados_email_key UNIQUE (email)
);
`

// 唯一约束名到请求字段名的映射
var constraintFields = map[string]string{
	"users_username_key":            "username",
	"users_email_key":               "email",
	"empleados_codigo_empleado_key": "codigo_empleado",
	"empleados_email_key":           "email",
}

type PostgresRepository struct {
	dbpool       *sql.DB
	queryTimeout time.Duration
}

func NewPostgresRepository(dbpool *sql.DB, queryTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{
		dbpool:       dbpool,
		queryTimeout: queryTimeout,
	}
}

// Migrate 创建缺少的表，已经存在的表不会被修改
func (r *PostgresRepository) Migrate() error {
	ctx, cancel := r.ctx()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.queryTimeout)
}

// translate 把驱动层的错误转换为仓储层的错误
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return &DuplicateError{Field: field}
		}
	}
	return err
}

// expectOne 用于 UPDATE 和 DELETE，没有命中任何行时返回 ErrNotFound
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
