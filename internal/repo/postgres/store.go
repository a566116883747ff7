package postgres

import (
	"context"

	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewStore wires every repository onto one shared pool. Close releases the pool.
func NewStore(pool *pgxpool.Pool, prom *observability.Prom) *repo.Store {
	return repo.NewStore(
		NewUsersRepo(pool, prom),
		NewTasksRepo(pool, prom),
		NewPayrollRepo(pool, prom),
		NewPaymentsRepo(pool, prom),
		NewMessagesRepo(pool, prom),
		pool.Ping,
		func(context.Context) error {
			pool.Close()
			return nil
		},
	)
}
