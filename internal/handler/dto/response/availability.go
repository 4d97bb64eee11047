package response

import (
	"log/slog"
	"time"

	"viewing-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityResponse struct {
	AgentID            uuid.UUID        `json:"agent_id"`
	Timezone           string           `json:"timezone"`
	ViewingDurationMin int              `json:"viewing_duration_min"`
	BufferMin          int              `json:"buffer_min"`
	Windows            []WindowResponse `json:"windows"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type WindowResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map availability view", "error", err.Error())
	}
	return &resp
}
