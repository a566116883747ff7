package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/redis/go-redis/v9"
)

// RoleCache stores a user's role keyed by email.
type RoleCache interface {
	Get(ctx context.Context, email string) (string, bool)
	Set(ctx context.Context, email, role string)
	Delete(ctx context.Context, email string)
}

type MemoryRoleCache struct {
	c *TTL[string]
}

func NewMemoryRoleCache(ttl time.Duration) *MemoryRoleCache {
	return &MemoryRoleCache{c: NewTTL[string](ttl)}
}

func (m *MemoryRoleCache) Get(_ context.Context, email string) (string, bool) {
	return m.c.Get(email)
}

func (m *MemoryRoleCache) Set(_ context.Context, email, role string) {
	m.c.Set(email, role)
}

func (m *MemoryRoleCache) Delete(_ context.Context, email string) {
	m.c.Delete(email)
}

const redisRolePrefix = "staffhub:role:"

// RedisRoleCache shares cached roles between API replicas. Redis failures
// degrade to a cache miss.
type RedisRoleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoleCache(rdb *redis.Client, ttl time.Duration) *RedisRoleCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisRoleCache{rdb: rdb, ttl: ttl}
}

func (r *RedisRoleCache) Get(ctx context.Context, email string) (string, bool) {
	role, err := r.rdb.Get(ctx, redisRolePrefix+email).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Default().WarnContext(ctx, "role cache get failed", "err", err)
		}
		return "", false
	}
	return role, true
}

func (r *RedisRoleCache) Set(ctx context.Context, email, role string) {
	if err := r.rdb.Set(ctx, redisRolePrefix+email, role, r.ttl).Err(); err != nil {
		slog.Default().WarnContext(ctx, "role cache set failed", "err", err)
	}
}

func (r *RedisRoleCache) Delete(ctx context.Context, email string) {
	if err := r.rdb.Del(ctx, redisRolePrefix+email).Err(); err != nil {
		slog.Default().WarnContext(ctx, "role cache delete failed", "err", err)
	}
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// Roles resolves a caller's stored role, consulting the cache first.
// A lookup only writes back to the cache when no Forget for the same email
// ran while it was reading the store. Forgets issued by another replica are
// not seen here; those entries age out with the cache TTL.
type Roles struct {
	users UserLookup
	cache RoleCache
	prom  *observability.Prom

	mu      sync.Mutex
	forgets map[string]uint64
}

func NewRoles(users UserLookup, cache RoleCache, prom *observability.Prom) *Roles {
	return &Roles{users: users, cache: cache, prom: prom, forgets: make(map[string]uint64)}
}

// RoleOf returns user.ErrNotFound when no user has the email.
func (r *Roles) RoleOf(ctx context.Context, email string) (string, error) {
	if r.cache != nil {
		if role, ok := r.cache.Get(ctx, email); ok {
			r.count("hit")
			return role, nil
		}
		r.count("miss")
	}

	gen := r.generation(email)

	u, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if r.cache != nil && r.generation(email) == gen {
		r.cache.Set(ctx, email, u.Role)
	}

	return u.Role, nil
}

// Forget drops the cached role after a role-changing write.
func (r *Roles) Forget(ctx context.Context, email string) {
	r.mu.Lock()
	r.forgets[email]++
	r.mu.Unlock()

	if r.cache != nil {
		r.cache.Delete(ctx, email)
	}
}

func (r *Roles) generation(email string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forgets[email]
}

func (r *Roles) count(result string) {
	if r.prom != nil {
		r.prom.RoleCacheLookups.WithLabelValues(result).Inc()
	}
}
