package components

import (
	"icms/internal/handler"
	"icms/internal/handler/api"
	"icms/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTransactionHandler,
		api.NewSampleHandler,
		middleware.NewAuthMiddleware,
		func(t *api.TransactionHandler, s *api.SampleHandler) handler.Handlers {
			return handler.Handlers{Transactions: t, Samples: s}
		},
	),
	fx.Invoke(handler.NewRouter),
)
