package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/google/uuid"
)

type TasksRepo struct {
	mu    sync.RWMutex
	items map[string]task.Task
	order []string
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{items: make(map[string]task.Task)}
}

func (r *TasksRepo) List(ctx context.Context) ([]task.Task, error) {
	return r.filter(func(task.Task) bool { return true }), nil
}

func (r *TasksRepo) ListByEmail(ctx context.Context, email string) ([]task.Task, error) {
	return r.filter(func(t task.Task) bool { return t.Email == email }), nil
}

func (r *TasksRepo) Progress(ctx context.Context, f task.ProgressFilter) ([]task.Task, error) {
	return r.filter(func(t task.Task) bool {
		return (f.Name == "" || t.Name == f.Name) && (f.Month == "" || t.Month == f.Month)
	}), nil
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = uuid.NewString()

	r.mu.Lock()
	r.items[t.ID] = t
	r.order = append(r.order, t.ID)
	r.mu.Unlock()

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}

	t.Task = req.Task
	t.Hours = req.Hours
	t.Date = req.Date
	r.items[id] = t

	return t, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return task.ErrNotFound
	}

	delete(r.items, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *TasksRepo) filter(keep func(task.Task) bool) []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, 0)

	for _, id := range r.order {
		if t := r.items[id]; keep(t) {
			out = append(out, t)
		}
	}

	return out
}
