package repository

import (
	"context"
	"time"

	"viewing-scheduler/internal/domain/schedule"
	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ViewingRepository struct {
	pool *pgxpool.Pool
}

func NewViewingRepository(pool *pgxpool.Pool) *ViewingRepository {
	return &ViewingRepository{pool: pool}
}

const viewingColumns = `
	id, agent_id, property_id, conversation_id, customer_phone, customer_name,
	scheduled_time, duration_min, status, notes, reminder_sent, created_at, updated_at
`

func (r *ViewingRepository) Create(ctx context.Context, tx pgx.Tx, v *viewing.Viewing) error {
	query := `
		INSERT INTO viewings (
			id, agent_id, property_id, conversation_id, customer_phone, customer_name,
			scheduled_time, duration_min, status, notes, reminder_sent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(v.ID()),
		pgconv.UUIDToPgtype(v.AgentID()),
		pgconv.UUIDToPgtype(v.PropertyID()),
		pgconv.UUIDToPgtype(v.ConversationID()),
		v.CustomerPhone(),
		pgconv.StringPtrToPgtype(v.CustomerName()),
		pgconv.TimeToPgtype(v.ScheduledTime()),
		int32(v.Duration()/time.Minute),
		string(v.Status()),
		pgconv.StringPtrToPgtype(v.Notes()),
		v.ReminderSent(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert viewing", err)
	}
	return nil
}

func (r *ViewingRepository) Update(ctx context.Context, tx pgx.Tx, v *viewing.Viewing) error {
	query := `
		UPDATE viewings
		SET scheduled_time = $2, status = $3, notes = $4, reminder_sent = $5, updated_at = now()
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(v.ID()),
		pgconv.TimeToPgtype(v.ScheduledTime()),
		string(v.Status()),
		pgconv.StringPtrToPgtype(v.Notes()),
		v.ReminderSent(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update viewing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("viewing not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ViewingRepository) FindByID(ctx context.Context, id uuid.UUID) (*viewing.Viewing, error) {
	return r.findByID(ctx, r.pool, id, false)
}

func (r *ViewingRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*viewing.Viewing, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *ViewingRepository) findByID(ctx context.Context, q dbtx, id uuid.UUID, forUpdate bool) (*viewing.Viewing, error) {
	query := `SELECT ` + viewingColumns + ` FROM viewings WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	v, err := scanViewing(q.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("viewing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find viewing", err)
	}
	return v, nil
}

// FindActiveByAgentTx loads the conflict-detection projection of every
// scheduled or confirmed viewing in the range, inside the caller's
// transaction so the advisory lock covers the read.
func (r *ViewingRepository) FindActiveByAgentTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, from, to time.Time) ([]schedule.Booking, error) {
	return findActiveBookings(ctx, tx, agentID, from, to)
}

// FindActiveByAgent is the lock-free variant used by the read side.
func (r *ViewingRepository) FindActiveByAgent(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]schedule.Booking, error) {
	return findActiveBookings(ctx, r.pool, agentID, from, to)
}

func findActiveBookings(ctx context.Context, q dbtx, agentID uuid.UUID, from, to time.Time) ([]schedule.Booking, error) {
	query := `
		SELECT id, scheduled_time, duration_min
		FROM viewings
		WHERE agent_id = $1
		  AND status IN ('scheduled', 'confirmed')
		  AND scheduled_time >= $2
		  AND scheduled_time < $3
		ORDER BY scheduled_time
	`
	rows, err := q.Query(ctx, query, pgconv.UUIDToPgtype(agentID), pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active viewings", err)
	}
	defer rows.Close()

	var bookings []schedule.Booking
	for rows.Next() {
		var (
			id          uuid.UUID
			start       time.Time
			durationMin int32
		)
		if err := rows.Scan(&id, &start, &durationMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active viewing", err)
		}
		bookings = append(bookings, schedule.Booking{
			ViewingID: id,
			Start:     start,
			Duration:  time.Duration(durationMin) * time.Minute,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active viewings", err)
	}
	return bookings, nil
}

// LockAgent takes a transaction-scoped advisory lock keyed by the agent id,
// serializing concurrent booking attempts for the same agent. Released
// automatically at commit or rollback.
func (r *ViewingRepository) LockAgent(ctx context.Context, tx pgx.Tx, agentID uuid.UUID) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, agentID.String())
	if err != nil {
		return infra.WrapRepoErr("failed to lock agent", err)
	}
	return nil
}

// MarkReminderSent flips the long-lead dedupe flag without touching the rest
// of the row. Used by the reminder worker outside any booking transaction.
func (r *ViewingRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE viewings SET reminder_sent = TRUE, updated_at = now() WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to mark reminder sent", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("viewing not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanViewing(row pgx.Row) (*viewing.Viewing, error) {
	var (
		id, agentID, propertyID, conversationID uuid.UUID
		customerPhone                           string
		customerName, notes                     *string
		scheduledTime, createdAt, updatedAt     time.Time
		durationMin                             int32
		status                                  string
		reminderSent                            bool
	)
	err := row.Scan(
		&id, &agentID, &propertyID, &conversationID, &customerPhone, &customerName,
		&scheduledTime, &durationMin, &status, &notes, &reminderSent, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return viewing.Reconstruct(
		id, agentID, propertyID, conversationID,
		customerPhone, customerName,
		scheduledTime, time.Duration(durationMin)*time.Minute,
		viewing.Status(status), notes, reminderSent,
		createdAt, updatedAt,
	), nil
}
