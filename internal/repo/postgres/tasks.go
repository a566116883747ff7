package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, task, hours, date, email, name, month, created_at`

type TasksRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTasksRepo(pool *pgxpool.Pool, prom *observability.Prom) *TasksRepo {
	return &TasksRepo{pool: pool, prom: prom}
}

func (r *TasksRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Task, &t.Hours, &t.Date, &t.Email, &t.Name, &t.Month, &t.CreatedAt)
	return t, err
}

func (r *TasksRepo) query(ctx context.Context, op, sql string, args ...any) ([]task.Task, error) {
	out := make([]task.Task, 0)

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *TasksRepo) List(ctx context.Context) ([]task.Task, error) {
	return r.query(ctx, "tasks.list", `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
}

func (r *TasksRepo) ListByEmail(ctx context.Context, email string) ([]task.Task, error) {
	return r.query(ctx, "tasks.list_by_email",
		`SELECT `+taskColumns+` FROM tasks WHERE email = $1 ORDER BY created_at ASC, id ASC`, email)
}

func (r *TasksRepo) Progress(ctx context.Context, filter task.ProgressFilter) ([]task.Task, error) {
	var conds []string
	var args []any

	argsPosition := 1

	if filter.Name != "" {
		conds = append(conds, fmt.Sprintf("name = $%d", argsPosition))
		args = append(args, filter.Name)
		argsPosition++
	}

	if filter.Month != "" {
		conds = append(conds, fmt.Sprintf("month = $%d", argsPosition))
		args = append(args, filter.Month)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at ASC, id ASC"

	return r.query(ctx, "tasks.progress", query, args...)
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = uuid.NewString()

	err := r.observe("tasks.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO tasks (`+taskColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			t.ID, t.Task, t.Hours, t.Date, t.Email, t.Name, t.Month, t.CreatedAt)
		return e
	})

	if err != nil {
		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error) {
	var t task.Task

	err := r.observe("tasks.update", func() error {
		var e error
		t, e = scanTask(r.pool.QueryRow(ctx, `
			UPDATE tasks
			SET task = $2, hours = $3, date = $4
			WHERE id = $1
			RETURNING `+taskColumns,
			id, req.Task, req.Hours, req.Date))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("tasks.delete", func() error {
		tag, e := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return e
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return task.ErrNotFound
	}

	return nil
}
