package db

import (
	"context"
	"fmt"

	"github.com/geocoder89/staffhub/internal/config"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/geocoder89/staffhub/internal/repo/memory"
	mongorepo "github.com/geocoder89/staffhub/internal/repo/mongo"
	"github.com/geocoder89/staffhub/internal/repo/postgres"
)

// OpenStore connects the backend selected by cfg.StoreDriver and prepares its
// schema or indexes.
func OpenStore(ctx context.Context, cfg config.Config, prom *observability.Prom) (*repo.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}

		return postgres.NewStore(pool, prom), nil

	case config.DriverMongo:
		client, err := NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}

		if err := mongorepo.EnsureIndexes(ctx, client.Database(cfg.MongoDB)); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}

		return mongorepo.NewStore(client, cfg.MongoDB, prom), nil

	case config.DriverMemory:
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
