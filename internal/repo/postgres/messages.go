package postgres

import (
	"context"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessagesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMessagesRepo(pool *pgxpool.Pool, prom *observability.Prom) *MessagesRepo {
	return &MessagesRepo{pool: pool, prom: prom}
}

func (r *MessagesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *MessagesRepo) Create(ctx context.Context, m message.Message) (message.Message, error) {
	m.ID = uuid.NewString()

	err := r.observe("messages.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO messages (id, email, message, date, created_at) VALUES ($1,$2,$3,$4,$5)`,
			m.ID, m.Email, m.Message, m.Date, m.CreatedAt)
		return e
	})

	if err != nil {
		return message.Message{}, err
	}

	return m, nil
}

func (r *MessagesRepo) List(ctx context.Context) ([]message.Message, error) {
	out := make([]message.Message, 0)

	err := r.observe("messages.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id, email, message, date, created_at FROM messages ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m message.Message
			if err := rows.Scan(&m.ID, &m.Email, &m.Message, &m.Date, &m.CreatedAt); err != nil {
				return err
			}
			out = append(out, m)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
