package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"icms/internal/infra/audit"
	"icms/internal/infra/dispatch"
	"icms/internal/infra/notify"
	"icms/internal/pkg/config"
	"icms/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const (
	dbConnectTimeout = 10 * time.Second
	redisPingTimeout = 2 * time.Second
)

// SideEffectsModule provides the collaborators that run after a commit.
var SideEffectsModule = fx.Module("sideeffects",
	fx.Provide(
		NewDispatcher,
		NewNotifier,
		NewAuditSink,
	),
)

// NewDispatcher takes the notifier so the notifier's stop hook is registered
// first and runs after the pool has drained.
func NewDispatcher(lc fx.Lifecycle, cfg config.Config, _ commands.Notifier) commands.Dispatcher {
	pool := dispatch.NewPool(cfg.Dispatcher)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return pool.Stop(ctx)
		},
	})

	return pool
}

func NewNotifier(lc fx.Lifecycle, cfg config.Config) commands.Notifier {
	if !cfg.Notify.Enabled {
		slog.Info("completion notifications disabled")
		return notify.Disabled{}
	}

	n := notify.NewRabbitNotifier(cfg.Notify)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n
}

func NewAuditSink(pool *pgxpool.Pool, logger *slog.Logger, cfg config.Config) (commands.AuditSink, error) {
	return audit.NewSink(pool,
		audit.WithTable(cfg.Audit.Table),
		audit.WithLogger(logger),
	)
}
