package request

import (
	"strings"
	"time"

	"viewing-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookViewingRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" binding:"required"`
	PropertyID     uuid.UUID `json:"property_id" binding:"required"`
	ScheduledTime  time.Time `json:"scheduled_time" binding:"required"`
	CustomerPhone  string    `json:"customer_phone" binding:"required"`
	CustomerName   *string   `json:"customer_name,omitempty"`
	DurationMin    *int      `json:"duration_min,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
}

func (r BookViewingRequest) ToInput() commands.BookViewingInput {
	return commands.BookViewingInput{
		ConversationID: r.ConversationID,
		PropertyID:     r.PropertyID,
		ScheduledTime:  r.ScheduledTime,
		CustomerPhone:  strings.TrimSpace(r.CustomerPhone),
		CustomerName:   trimPtr(r.CustomerName),
		DurationMin:    r.DurationMin,
		Notes:          trimPtr(r.Notes),
	}
}

type RescheduleViewingRequest struct {
	NewScheduledTime time.Time `json:"new_scheduled_time" binding:"required"`
	Notes            *string   `json:"notes,omitempty"`
}

func (r RescheduleViewingRequest) ToInput() commands.RescheduleViewingInput {
	return commands.RescheduleViewingInput{
		NewScheduledTime: r.NewScheduledTime,
		Notes:            trimPtr(r.Notes),
	}
}

type CancelViewingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
