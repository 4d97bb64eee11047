package components

import (
	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/usecase/commands"
	"viewing-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewAvailabilityCommands,
		commands.NewViewingCommands,
	),
)

func NewAvailabilityCommands(repo commands.AvailabilityRepository, cfg config.Config) commands.AvailabilityCommands {
	return commands.NewAvailabilityCommands(repo, cfg.Scheduling)
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewViewingQueries,
		queries.NewSlotQueries,
	),
)
