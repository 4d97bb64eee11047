package request

import (
	"viewing-scheduler/internal/usecase/commands"
)

type WindowRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Timezone, duration and buffer are optional; the command substitutes the
// configured defaults when they are absent.
type SetAvailabilityRequest struct {
	Timezone           string          `json:"timezone"`
	ViewingDurationMin *int            `json:"viewing_duration_min" binding:"omitempty,min=1"`
	BufferMin          *int            `json:"buffer_min" binding:"omitempty,min=0"`
	Windows            []WindowRequest `json:"windows" binding:"required,min=1,dive"`
}

func (r SetAvailabilityRequest) ToInput() commands.SetAvailabilityInput {
	windows := make([]commands.WindowInput, len(r.Windows))
	for i, w := range r.Windows {
		windows[i] = commands.WindowInput{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}
	return commands.SetAvailabilityInput{
		Timezone:           r.Timezone,
		ViewingDurationMin: r.ViewingDurationMin,
		BufferMin:          r.BufferMin,
		Windows:            windows,
	}
}
