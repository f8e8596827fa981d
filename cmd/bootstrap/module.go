package bootstrap

import (
	"innkeeper/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
