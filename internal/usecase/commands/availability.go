package commands

import (
	"context"

	"viewing-scheduler/internal/domain/availability"
	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidAvailability = errs.New("invalid availability")
	ErrAvailabilityStore   = errs.New("failed to store availability")
)

type WindowInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// SetAvailabilityInput carries the raw request. Nil duration/buffer and an
// empty timezone mean "not provided" and fall back to the configured defaults.
type SetAvailabilityInput struct {
	Timezone           string
	ViewingDurationMin *int
	BufferMin          *int
	Windows            []WindowInput
}

type AvailabilityCommands interface {
	SetAvailability(ctx context.Context, agentID uuid.UUID, input SetAvailabilityInput) error
}

type availabilityCommandsImpl struct {
	repo     AvailabilityRepository
	defaults config.SchedulingConfig
}

func NewAvailabilityCommands(repo AvailabilityRepository, defaults config.SchedulingConfig) AvailabilityCommands {
	return &availabilityCommandsImpl{repo: repo, defaults: defaults}
}

// SetAvailability validates and replaces the agent's whole weekly surface.
// Validation failures leave any prior availability untouched.
func (c *availabilityCommandsImpl) SetAvailability(ctx context.Context, agentID uuid.UUID, input SetAvailabilityInput) error {
	windows := make([]availability.WeeklyWindow, 0, len(input.Windows))
	for _, w := range input.Windows {
		window, err := availability.NewWeeklyWindow(w.DayOfWeek, w.StartTime, w.EndTime)
		if err != nil {
			return errs.Mark(err, ErrInvalidAvailability)
		}
		windows = append(windows, window)
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = c.defaults.DefaultTimezone
	}
	durationMin := c.defaults.DefaultViewingDurationMin
	if input.ViewingDurationMin != nil {
		durationMin = *input.ViewingDurationMin
	}
	bufferMin := c.defaults.DefaultBufferMin
	if input.BufferMin != nil {
		bufferMin = *input.BufferMin
	}

	entity, err := availability.NewAvailability(agentID, timezone, durationMin, bufferMin, windows)
	if err != nil {
		return errs.Mark(err, ErrInvalidAvailability)
	}

	if err := c.repo.Replace(ctx, entity); err != nil {
		return errs.Mark(err, ErrAvailabilityStore)
	}
	return nil
}
