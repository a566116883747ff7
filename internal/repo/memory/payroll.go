package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/google/uuid"
)

type payrollKey struct {
	email string
	month string
	year  int
}

type PayrollRepo struct {
	mu    sync.RWMutex
	items map[string]payroll.Request
	keys  map[payrollKey]string
	order []string
}

func NewPayrollRepo() *PayrollRepo {
	return &PayrollRepo{
		items: make(map[string]payroll.Request),
		keys:  make(map[payrollKey]string),
	}
}

func (r *PayrollRepo) CreateIfAbsent(ctx context.Context, req payroll.Request) (payroll.Request, error) {
	k := payrollKey{email: req.Email, month: req.Month, year: req.Year}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[k]; exists {
		return payroll.Request{}, payroll.ErrAlreadyRequested
	}

	req.ID = uuid.NewString()
	r.items[req.ID] = req
	r.keys[k] = req.ID
	r.order = append(r.order, req.ID)

	return req, nil
}

func (r *PayrollRepo) List(ctx context.Context) ([]payroll.Request, error) {
	return r.filter(func(payroll.Request) bool { return true }, 0), nil
}

func (r *PayrollRepo) MarkPaid(ctx context.Context, id string, at time.Time) (payroll.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return payroll.Request{}, payroll.ErrNotFound
	}

	at = at.UTC()
	p.IsPaid = true
	p.Status = payroll.StatusPaid
	p.PaymentDate = &at
	r.items[id] = p

	return p, nil
}

func (r *PayrollRepo) ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error) {
	return r.filter(func(p payroll.Request) bool { return p.IsPaid && !p.Posted }, limit), nil
}

func (r *PayrollRepo) MarkPosted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return payroll.ErrNotFound
	}

	p.Posted = true
	r.items[id] = p

	return nil
}

func (r *PayrollRepo) filter(keep func(payroll.Request) bool, limit int) []payroll.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payroll.Request, 0)

	for _, id := range r.order {
		if p := r.items[id]; keep(p) {
			out = append(out, p)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
