package bootstrap

import (
	"viewing-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.NotifyModule,
	components.ReminderModule,
	components.HandlerModule,
)
