package postgres

import (
	"context"

	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPaymentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PaymentsRepo {
	return &PaymentsRepo{pool: pool, prom: prom}
}

func (r *PaymentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Page uses a window count so a page and its total come from one query.
func (r *PaymentsRepo) Page(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error) {
	out := make([]payment.Payment, 0, limit)
	total := 0

	err := r.observe("payments.page", func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, email, year, month, amount, COUNT(*) OVER() AS total
			FROM payments
			WHERE email = $1
			ORDER BY year ASC, month ASC, id ASC
			LIMIT $2 OFFSET $3`, email, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p payment.Payment
			if err := rows.Scan(&p.ID, &p.Email, &p.Year, &p.Month, &p.Amount, &total); err != nil {
				return err
			}
			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	// past the last page the window yields no rows, so count separately
	if len(out) == 0 && offset > 0 {
		err = r.observe("payments.count", func() error {
			return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE email = $1`, email).Scan(&total)
		})
		if err != nil {
			return nil, 0, err
		}
	}

	return out, total, nil
}

func (r *PaymentsRepo) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	out := make([]payment.Payment, 0)

	err := r.observe("payments.list_by_email", func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, email, year, month, amount
			FROM payments
			WHERE email = $1
			ORDER BY year ASC, month ASC, id ASC`, email)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p payment.Payment
			if err := rows.Scan(&p.ID, &p.Email, &p.Year, &p.Month, &p.Amount); err != nil {
				return err
			}
			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PaymentsRepo) Upsert(ctx context.Context, p payment.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return r.observe("payments.upsert", func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO payments (id, email, year, month, amount)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (email, year, month) DO UPDATE SET amount = EXCLUDED.amount`,
			p.ID, p.Email, p.Year, p.Month, p.Amount)
		return err
	})
}
