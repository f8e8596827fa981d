package components

import (
	"context"
	"log/slog"

	"innkeeper/internal/infra/db"
	"innkeeper/internal/infra/idempotency"
	"innkeeper/internal/infra/memory"
	"innkeeper/internal/infra/repository"
	"innkeeper/internal/infra/uow"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewDatabase,
		NewUnitOfWork,
		NewIdempotencyStore,
	),
)

// NewDatabase opens the pool and applies the schema when STORE_DRIVER is
// postgres. With the in-memory driver it returns a nil pool.
func NewDatabase(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return nil, nil
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	slog.Info("connected to postgres", "host", cfg.DB.Host, "database", cfg.DB.DBName)
	return pool, nil
}

func NewUnitOfWork(pool *pgxpool.Pool) shared.UnitOfWork {
	if pool == nil {
		slog.Info("using in-memory store")
		return memory.NewUnitOfWork(memory.NewStore())
	}
	slog.Info("using postgres store")
	return uow.NewPostgresUoW(pool)
}

// NewIdempotencyStore prefers Redis when REDIS_ADDR is set so that replays
// are honoured across instances. Otherwise keys live beside the reservations.
func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, pool *pgxpool.Pool) (shared.IdempotencyStore, error) {
	if cfg.Redis.Addr != "" {
		return newRedisIdempotencyStore(lc, cfg.Redis)
	}
	if pool == nil {
		return idempotency.NewMemoryStore(clk), nil
	}

	repo := repository.NewIdempotencyRepository(pool, clk)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			purged, err := repo.DeleteExpired(ctx)
			if err != nil {
				return err
			}
			slog.Info("expired idempotency keys purged", "count", purged)
			return nil
		},
	})
	return repo, nil
}

func newRedisIdempotencyStore(lc fx.Lifecycle, cfg config.RedisConfig) (shared.IdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "failed to reach redis at %s", cfg.Addr)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	slog.Info("using redis idempotency store", "addr", cfg.Addr)
	return idempotency.NewRedisStore(client), nil
}
