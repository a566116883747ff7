package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'employee',
		photo TEXT NOT NULL DEFAULT '',
		designation TEXT NOT NULL DEFAULT '',
		bank_account_no TEXT NOT NULL DEFAULT '',
		salary DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_fired BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		task TEXT NOT NULL,
		hours DOUBLE PRECISION NOT NULL,
		date TEXT NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		month TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_email_idx ON tasks (email)`,
	`CREATE TABLE IF NOT EXISTS payroll_requests (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		amount DOUBLE PRECISION NOT NULL,
		month TEXT NOT NULL,
		year INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		payment_date TIMESTAMPTZ,
		posted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (email, month, year)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		year INT NOT NULL,
		month INT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		UNIQUE (email, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		date TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the tables if they are missing. It never alters an
// existing table.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
