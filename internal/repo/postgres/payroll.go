package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const payrollColumns = `id, email, name, amount, month, year, status, is_paid, payment_date, posted, created_at`

type PayrollRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPayrollRepo(pool *pgxpool.Pool, prom *observability.Prom) *PayrollRepo {
	return &PayrollRepo{pool: pool, prom: prom}
}

func (r *PayrollRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanPayroll(row pgx.Row) (payroll.Request, error) {
	var p payroll.Request
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Amount, &p.Month, &p.Year, &p.Status, &p.IsPaid, &p.PaymentDate, &p.Posted, &p.CreatedAt)
	return p, err
}

// CreateIfAbsent leans on the (email, month, year) unique constraint so two
// concurrent requests cannot both insert.
func (r *PayrollRepo) CreateIfAbsent(ctx context.Context, req payroll.Request) (payroll.Request, error) {
	req.ID = uuid.NewString()

	var out payroll.Request

	err := r.observe("payroll.create_if_absent", func() error {
		var e error
		out, e = scanPayroll(r.pool.QueryRow(ctx, `
			INSERT INTO payroll_requests (`+payrollColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (email, month, year) DO NOTHING
			RETURNING `+payrollColumns,
			req.ID, req.Email, req.Name, req.Amount, req.Month, req.Year, req.Status, req.IsPaid, req.PaymentDate, req.Posted, req.CreatedAt,
		))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Request{}, payroll.ErrAlreadyRequested
		}
		return payroll.Request{}, err
	}

	return out, nil
}

func (r *PayrollRepo) query(ctx context.Context, op, sql string, args ...any) ([]payroll.Request, error) {
	out := make([]payroll.Request, 0)

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPayroll(rows)
			if err != nil {
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

func (r *PayrollRepo) List(ctx context.Context) ([]payroll.Request, error) {
	return r.query(ctx, "payroll.list", `SELECT `+payrollColumns+` FROM payroll_requests ORDER BY created_at ASC, id ASC`)
}

func (r *PayrollRepo) ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error) {
	return r.query(ctx, "payroll.list_unposted", `
		SELECT `+payrollColumns+` FROM payroll_requests
		WHERE is_paid AND NOT posted
		ORDER BY payment_date ASC, id ASC
		LIMIT $1`, limit)
}

func (r *PayrollRepo) MarkPaid(ctx context.Context, id string, at time.Time) (payroll.Request, error) {
	var p payroll.Request

	err := r.observe("payroll.mark_paid", func() error {
		var e error
		p, e = scanPayroll(r.pool.QueryRow(ctx, `
			UPDATE payroll_requests
			SET is_paid = TRUE, status = $2, payment_date = $3
			WHERE id = $1
			RETURNING `+payrollColumns, id, payroll.StatusPaid, at.UTC()))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Request{}, payroll.ErrNotFound
		}
		return payroll.Request{}, err
	}

	return p, nil
}

func (r *PayrollRepo) MarkPosted(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("payroll.mark_posted", func() error {
		tag, e := r.pool.Exec(ctx, `UPDATE payroll_requests SET posted = TRUE WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return e
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return payroll.ErrNotFound
	}

	return nil
}
