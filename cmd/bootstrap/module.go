package bootstrap

import (
	"icms/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	SideEffectsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
