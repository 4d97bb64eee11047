package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ViewingView struct {
	ID             uuid.UUID `json:"id"`
	AgentID        uuid.UUID `json:"agent_id"`
	PropertyID     uuid.UUID `json:"property_id"`
	PropertyTitle  string    `json:"property_title"`
	ConversationID uuid.UUID `json:"conversation_id"`
	CustomerPhone  string    `json:"customer_phone"`
	CustomerName   *string   `json:"customer_name,omitempty"`
	ScheduledTime  time.Time `json:"scheduled_time"`
	DurationMin    int32     `json:"duration_min"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	ReminderSent   bool      `json:"reminder_sent"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ViewingListItem struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	CustomerPhone string    `json:"customer_phone"`
	ScheduledTime time.Time `json:"scheduled_time"`
	DurationMin   int32     `json:"duration_min"`
	Status        string    `json:"status"`
}

type AvailabilityView struct {
	AgentID            uuid.UUID    `json:"agent_id"`
	Timezone           string       `json:"timezone"`
	ViewingDurationMin int          `json:"viewing_duration_min"`
	BufferMin          int          `json:"buffer_min"`
	Windows            []WindowView `json:"windows"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type WindowView struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SlotView struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ViewingFilters narrows List results. Nil fields are ignored.
type ViewingFilters struct {
	Status     *string
	From       *time.Time
	To         *time.Time
	PropertyID *uuid.UUID
}
