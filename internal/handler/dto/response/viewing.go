package response

import (
	"log/slog"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ViewingResponse struct {
	ID             uuid.UUID `json:"id"`
	AgentID        uuid.UUID `json:"agent_id"`
	PropertyID     uuid.UUID `json:"property_id"`
	PropertyTitle  string    `json:"property_title,omitempty"`
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

type ViewingListResponse struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	CustomerPhone string    `json:"customer_phone"`
	ScheduledTime time.Time `json:"scheduled_time"`
	DurationMin   int32     `json:"duration_min"`
	Status        string    `json:"status"`
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func FromViewingView(rm *queries.ViewingView) *ViewingResponse {
	var resp ViewingResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map viewing view", "error", err.Error())
	}
	return &resp
}

func FromViewingListItem(rm *queries.ViewingListItem) *ViewingListResponse {
	var resp ViewingListResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map viewing list item", "error", err.Error())
	}
	return &resp
}

// FromViewingEntity serves the command endpoints, which return the entity
// straight out of the transaction without a read-model round trip.
func FromViewingEntity(v *viewing.Viewing) *ViewingResponse {
	return &ViewingResponse{
		ID:             v.ID(),
		AgentID:        v.AgentID(),
		PropertyID:     v.PropertyID(),
		ConversationID: v.ConversationID(),
		CustomerPhone:  v.CustomerPhone(),
		CustomerName:   v.CustomerName(),
		ScheduledTime:  v.ScheduledTime(),
		DurationMin:    int32(v.Duration() / time.Minute),
		Status:         string(v.Status()),
		Notes:          v.Notes(),
		ReminderSent:   v.ReminderSent(),
		CreatedAt:      v.CreatedAt(),
		UpdatedAt:      v.UpdatedAt(),
	}
}

func FromSlotView(s queries.SlotView) SlotResponse {
	return SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
}
