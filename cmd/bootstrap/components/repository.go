package components

import (
	"viewing-scheduler/internal/infra/readstore"
	repo_impl "viewing-scheduler/internal/infra/repository"
	"viewing-scheduler/internal/reminder"
	"viewing-scheduler/internal/usecase/commands"
	"viewing-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewViewingRepository,
			fx.As(new(commands.ViewingRepository)),
			fx.As(new(reminder.ViewingStore)),
			fx.As(new(queries.ActiveBookingStore)),
		),
		fx.Annotate(
			repo_impl.NewAvailabilityRepository,
			fx.As(new(commands.AvailabilityRepository)),
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			repo_impl.NewPropertyRepository,
			fx.As(new(commands.PropertyRepository)),
		),
		fx.Annotate(
			repo_impl.NewConversationRepository,
			fx.As(new(commands.ConversationRepository)),
		),
		fx.Annotate(
			repo_impl.NewReminderJobRepository,
			fx.As(new(reminder.JobStore)),
		),
		// Read-side repository for queries
		fx.Annotate(
			readstore.NewViewingReadStore,
			fx.As(new(queries.ViewingReadStore)),
		),
	),
)
