package author

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// GetOrCreate relies on the unique index on name: the upsert is a no-op for
// an existing row but still returns it, so concurrent callers racing on the
// same new name all get the single inserted record.
func (r *PostgresRepo) GetOrCreate(ctx context.Context, name string) (Author, error) {
	const query = `
	INSERT INTO authors (id, name)
	VALUES (gen_random_uuid(), $1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id, name, born, created_at, updated_at
	`
	var a Author
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, name).Scan(
		&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	WHERE name = $1
	LIMIT 1
	`
	return r.getOne(ctx, query, name)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	WHERE id = $1
	LIMIT 1
	`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg any) (Author, error) {
	var a Author
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) UpdateBorn(ctx context.Context, name string, born int) (Author, error) {
	const query = `
	UPDATE authors
	SET born = $2, updated_at = NOW()
	WHERE name = $1
	RETURNING id, name, born, created_at, updated_at
	`
	var a Author
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, name, born).Scan(
		&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) All(ctx context.Context) ([]Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	ORDER BY name
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM authors`
	var n int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
