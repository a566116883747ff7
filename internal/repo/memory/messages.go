package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/google/uuid"
)

type MessagesRepo struct {
	mu    sync.RWMutex
	items []message.Message
}

func NewMessagesRepo() *MessagesRepo {
	return &MessagesRepo{}
}

func (r *MessagesRepo) Create(ctx context.Context, m message.Message) (message.Message, error) {
	m.ID = uuid.NewString()

	r.mu.Lock()
	r.items = append(r.items, m)
	r.mu.Unlock()

	return m, nil
}

func (r *MessagesRepo) List(ctx context.Context) ([]message.Message, error) {
	r.mu.RLock()
	out := make([]message.Message, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
