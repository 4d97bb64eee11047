package repository

import (
	"context"
	"encoding/json"
	"time"

	"viewing-scheduler/internal/domain/availability"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// windowRecord is the JSONB shape of one weekly window.
type windowRecord struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Replace upserts the agent's whole availability row. Set calls always
// replace; there are no partial window updates.
func (r *AvailabilityRepository) Replace(ctx context.Context, a *availability.Availability) error {
	records := make([]windowRecord, 0, len(a.Windows()))
	for _, w := range a.Windows() {
		records = append(records, windowRecord{
			DayOfWeek: int(w.Weekday()),
			StartTime: w.Start().String(),
			EndTime:   w.End().String(),
		})
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return infra.WrapRepoErr("failed to encode availability windows", err)
	}

	query := `
		INSERT INTO agent_availability (agent_id, timezone, viewing_duration_min, buffer_min, windows, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (agent_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			viewing_duration_min = EXCLUDED.viewing_duration_min,
			buffer_min = EXCLUDED.buffer_min,
			windows = EXCLUDED.windows,
			updated_at = now()
	`
	_, err = r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(a.AgentID()),
		a.Timezone(),
		int32(a.ViewingDuration()/time.Minute),
		int32(a.Buffer()/time.Minute),
		payload,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to replace availability", err)
	}
	return nil
}

func (r *AvailabilityRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) (*availability.Availability, error) {
	query := `
		SELECT agent_id, timezone, viewing_duration_min, buffer_min, windows, updated_at
		FROM agent_availability
		WHERE agent_id = $1
	`
	var (
		id          uuid.UUID
		timezone    string
		durationMin int32
		bufferMin   int32
		payload     []byte
		updatedAt   time.Time
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(agentID)).
		Scan(&id, &timezone, &durationMin, &bufferMin, &payload, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("availability not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find availability", err)
	}

	var records []windowRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, infra.WrapRepoErr("failed to decode availability windows", err)
	}
	windows := make([]availability.WeeklyWindow, 0, len(records))
	for _, rec := range records {
		w, err := availability.NewWeeklyWindow(rec.DayOfWeek, rec.StartTime, rec.EndTime)
		if err != nil {
			return nil, infra.WrapRepoErr("stored availability window is invalid", err)
		}
		windows = append(windows, w)
	}

	a, err := availability.ReconstructAvailability(id, timezone, int(durationMin), int(bufferMin), windows, updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored availability is invalid", err)
	}
	return a, nil
}
