package components

import (
	"context"
	"errors"
	"log/slog"

	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/reminder"
	"viewing-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReminderModule = fx.Module("reminder",
	fx.Provide(
		fx.Annotate(
			NewReminderScheduler,
			fx.As(new(commands.ReminderScheduler)),
		),
		NewReminderWorker,
	),
	fx.Invoke(StartReminderWorker),
)

func NewReminderScheduler(store reminder.JobStore, cfg config.Config, clk clock.Clock) *reminder.Scheduler {
	return reminder.NewScheduler(store, cfg.Reminder, clk)
}

func NewReminderWorker(store reminder.JobStore, viewings reminder.ViewingStore, dispatcher reminder.Dispatcher, cfg config.Config, clk clock.Clock) *reminder.Worker {
	return reminder.NewWorker(store, viewings, dispatcher, cfg.Reminder, clk)
}

// StartReminderWorker runs the polling worker for the whole application
// lifetime. OnStop cancels the worker context and Run drains in-flight jobs
// before returning.
func StartReminderWorker(lc fx.Lifecycle, worker *reminder.Worker) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("reminder worker stopped", "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
