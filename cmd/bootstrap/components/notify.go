package components

import (
	"viewing-scheduler/internal/infra/gateway"
	"viewing-scheduler/internal/notify"
	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/reminder"
	"viewing-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			NewMessagingClient,
			fx.As(new(notify.Messenger)),
		),
		fx.Annotate(
			notify.NewDispatcher,
			fx.As(new(commands.Notifier)),
			fx.As(new(reminder.Dispatcher)),
		),
	),
)

func NewMessagingClient(cfg config.Config) *gateway.MessagingClient {
	return gateway.NewMessagingClient(cfg.Messaging)
}
