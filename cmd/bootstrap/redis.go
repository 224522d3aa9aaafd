package bootstrap

import (
	"context"
	"log/slog"

	"icms/internal/infra/idempotency"
	"icms/internal/pkg/config"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewIdempotencyStore,
	),
)

// NewRedisClient returns nil when Redis is disabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		slog.Info("redis disabled, Idempotency-Key headers are ignored")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to connect to redis")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("redis connected", "addr", cfg.Redis.Addr)
	return client, nil
}

func NewIdempotencyStore(client *redis.Client, cfg config.Config) commands.IdempotencyStore {
	if client == nil {
		return nil
	}
	return idempotency.NewRedisStore(client, cfg.Idempotency)
}
