package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, name, role, photo, designation, bank_account_no, salary, is_verified, is_fired, created_at`

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.Photo,
		&u.Designation,
		&u.BankAccountNo,
		&u.Salary,
		&u.IsVerified,
		&u.IsFired,
		&u.CreatedAt,
	)

	return u, err
}

func (r *UsersRepo) query(ctx context.Context, op, sql string, args ...any) ([]user.User, error) {
	out := make([]user.User, 0)

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	return r.query(ctx, "users.list", `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
}

func (r *UsersRepo) ListByRole(ctx context.Context, role string) ([]user.User, error) {
	return r.query(ctx, "users.list_by_role",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at ASC, id ASC`, role)
}

func (r *UsersRepo) ListVerified(ctx context.Context) ([]user.User, error) {
	return r.query(ctx, "users.list_verified",
		`SELECT `+userColumns+` FROM users WHERE is_verified AND role <> $1 ORDER BY created_at ASC, id ASC`, user.RoleAdmin)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// CreateIfAbsent relies on the unique email index: a losing concurrent insert
// falls through to reading the winner.
func (r *UsersRepo) CreateIfAbsent(ctx context.Context, u user.User) (user.User, bool, error) {
	u.ID = uuid.NewString()

	var created user.User

	err := r.observe("users.create_if_absent", func() error {
		var e error
		created, e = scanUser(r.pool.QueryRow(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (email) DO NOTHING
			RETURNING `+userColumns,
			u.ID, u.Email, u.Name, u.Role, u.Photo, u.Designation, u.BankAccountNo, u.Salary, u.IsVerified, u.IsFired, u.CreatedAt,
		))
		return e
	})

	if err == nil {
		return created, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, false, err
	}

	existing, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return user.User{}, false, err
	}

	return existing, false, nil
}

func (r *UsersRepo) update(ctx context.Context, op, set string, args ...any) (user.User, error) {
	var u user.User

	err := r.observe(op, func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx, `UPDATE users SET `+set+` WHERE id = $1 RETURNING `+userColumns, args...))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) SetVerified(ctx context.Context, id string, verified bool) (user.User, error) {
	return r.update(ctx, "users.set_verified", `is_verified = $2`, id, verified)
}

func (r *UsersRepo) SetRole(ctx context.Context, id, role string) (user.User, error) {
	return r.update(ctx, "users.set_role", `role = $2`, id, role)
}

func (r *UsersRepo) PromoteToHR(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.promote_hr", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx, `
			UPDATE users SET role = $2
			WHERE id = $1 AND role IN ($2, $3)
			RETURNING `+userColumns, id, user.RoleHR, user.RoleEmployee))
		return e
	})

	if err == nil {
		return u, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, err
	}

	var exists bool

	err = r.observe("users.exists", func() error {
		return r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	})

	if err != nil {
		return user.User{}, err
	}

	if exists {
		return user.User{}, user.ErrRoleTransition
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Fire(ctx context.Context, id string) (user.User, error) {
	return r.update(ctx, "users.fire", `is_fired = TRUE`, id)
}

func (r *UsersRepo) RaiseSalary(ctx context.Context, id string, salary float64) (user.User, error) {
	var u user.User

	err := r.observe("users.raise_salary", func() error {
		var e error
		u, e = scanUser(r.pool.QueryRow(ctx, `
			UPDATE users SET salary = $2
			WHERE id = $1 AND salary < $2
			RETURNING `+userColumns, id, salary))
		return e
	})

	if err == nil {
		return u, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, err
	}

	// nothing written: tell a missing user apart from a non-increase
	var exists bool

	err = r.observe("users.exists", func() error {
		return r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	})

	if err != nil {
		return user.User{}, err
	}

	if exists {
		return user.User{}, user.ErrSalaryNotIncreased
	}

	return user.User{}, user.ErrNotFound
}
