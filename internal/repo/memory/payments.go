package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/google/uuid"
)

type PaymentsRepo struct {
	mu    sync.RWMutex
	items []payment.Payment
}

func NewPaymentsRepo() *PaymentsRepo {
	return &PaymentsRepo{}
}

func (r *PaymentsRepo) Page(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error) {
	all := r.byEmail(email)
	total := len(all)

	if offset >= total {
		return []payment.Payment{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return all[offset:end], total, nil
}

func (r *PaymentsRepo) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	return r.byEmail(email), nil
}

func (r *PaymentsRepo) Upsert(ctx context.Context, p payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.Email == p.Email && existing.Year == p.Year && existing.Month == p.Month {
			p.ID = existing.ID
			r.items[i] = p
			return nil
		}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	r.items = append(r.items, p)

	return nil
}

// byEmail returns a sorted copy: year then month ascending.
func (r *PaymentsRepo) byEmail(email string) []payment.Payment {
	r.mu.RLock()
	out := make([]payment.Payment, 0)
	for _, p := range r.items {
		if p.Email == email {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})

	return out
}
