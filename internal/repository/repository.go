package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads catalog and collection snapshots from Postgres. It is
// constructed once in main and injected; the engine never sees it.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping reports data-source reachability.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
