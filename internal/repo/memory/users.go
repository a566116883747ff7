package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/google/uuid"
)

type UsersRepo struct {
	mu      sync.RWMutex
	items   map[string]user.User // id -> user
	byEmail map[string]string    // email -> id
	order   []string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	return r.filter(func(user.User) bool { return true }), nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return r.items[id], nil
}

func (r *UsersRepo) CreateIfAbsent(ctx context.Context, u user.User) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[u.Email]; ok {
		return r.items[id], false, nil
	}

	u.ID = uuid.NewString()
	r.items[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)

	return u, true, nil
}

func (r *UsersRepo) ListByRole(ctx context.Context, role string) ([]user.User, error) {
	return r.filter(func(u user.User) bool { return u.Role == role }), nil
}

func (r *UsersRepo) ListVerified(ctx context.Context) ([]user.User, error) {
	return r.filter(func(u user.User) bool { return u.IsVerified && u.Role != user.RoleAdmin }), nil
}

func (r *UsersRepo) SetVerified(ctx context.Context, id string, verified bool) (user.User, error) {
	return r.mutate(id, func(u *user.User) error {
		u.IsVerified = verified
		return nil
	})
}

func (r *UsersRepo) SetRole(ctx context.Context, id, role string) (user.User, error) {
	return r.mutate(id, func(u *user.User) error {
		u.Role = role
		return nil
	})
}

func (r *UsersRepo) PromoteToHR(ctx context.Context, id string) (user.User, error) {
	return r.mutate(id, func(u *user.User) error {
		switch u.Role {
		case user.RoleEmployee:
			u.Role = user.RoleHR
			return nil
		case user.RoleHR:
			return nil
		default:
			return user.ErrRoleTransition
		}
	})
}

func (r *UsersRepo) Fire(ctx context.Context, id string) (user.User, error) {
	return r.mutate(id, func(u *user.User) error {
		u.IsFired = true
		return nil
	})
}

func (r *UsersRepo) RaiseSalary(ctx context.Context, id string, salary float64) (user.User, error) {
	return r.mutate(id, func(u *user.User) error {
		if salary <= u.Salary {
			return user.ErrSalaryNotIncreased
		}
		u.Salary = salary
		return nil
	})
}

func (r *UsersRepo) mutate(id string, fn func(u *user.User) error) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if err := fn(&u); err != nil {
		return user.User{}, err
	}

	r.items[id] = u

	return u, nil
}

// filter returns matches in insertion order.
func (r *UsersRepo) filter(keep func(user.User) bool) []user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))

	for _, id := range r.order {
		if u := r.items[id]; keep(u) {
			out = append(out, u)
		}
	}

	return out
}
