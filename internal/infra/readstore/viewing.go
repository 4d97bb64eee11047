// Package readstore holds the query-side pgx adapters. They scan straight
// into read models instead of domain entities.
package readstore

import (
	"context"
	"fmt"
	"strings"

	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"
	"viewing-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ViewingReadStore struct {
	pool *pgxpool.Pool
}

func NewViewingReadStore(pool *pgxpool.Pool) *ViewingReadStore {
	return &ViewingReadStore{pool: pool}
}

func (s *ViewingReadStore) FindView(ctx context.Context, agentID, id uuid.UUID) (*queries.ViewingView, error) {
	query := `
		SELECT
			v.id, v.agent_id, v.property_id, p.title, v.conversation_id,
			v.customer_phone, v.customer_name, v.scheduled_time, v.duration_min,
			v.status, v.notes, v.reminder_sent, v.created_at, v.updated_at
		FROM viewings v
		JOIN properties p ON p.id = v.property_id
		WHERE v.id = $1 AND v.agent_id = $2
	`
	var view queries.ViewingView
	err := s.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id), pgconv.UUIDToPgtype(agentID)).Scan(
		&view.ID, &view.AgentID, &view.PropertyID, &view.PropertyTitle, &view.ConversationID,
		&view.CustomerPhone, &view.CustomerName, &view.ScheduledTime, &view.DurationMin,
		&view.Status, &view.Notes, &view.ReminderSent, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("viewing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find viewing", err)
	}
	return &view, nil
}

func (s *ViewingReadStore) ListViews(ctx context.Context, agentID uuid.UUID, filters queries.ViewingFilters) ([]*queries.ViewingListItem, error) {
	conditions := []string{"v.agent_id = $1"}
	args := []any{pgconv.UUIDToPgtype(agentID)}

	appendCondition := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filters.Status != nil {
		appendCondition("v.status = $%d", *filters.Status)
	}
	if filters.From != nil {
		appendCondition("v.scheduled_time >= $%d", pgconv.TimeToPgtype(*filters.From))
	}
	if filters.To != nil {
		appendCondition("v.scheduled_time < $%d", pgconv.TimeToPgtype(*filters.To))
	}
	if filters.PropertyID != nil {
		appendCondition("v.property_id = $%d", pgconv.UUIDToPgtype(*filters.PropertyID))
	}

	query := `
		SELECT v.id, v.property_id, p.title, v.customer_phone, v.scheduled_time, v.duration_min, v.status
		FROM viewings v
		JOIN properties p ON p.id = v.property_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY v.scheduled_time
	`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list viewings", err)
	}
	defer rows.Close()

	items := make([]*queries.ViewingListItem, 0)
	for rows.Next() {
		var item queries.ViewingListItem
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.PropertyTitle,
			&item.CustomerPhone, &item.ScheduledTime, &item.DurationMin, &item.Status,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan viewing row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate viewing rows", err)
	}
	return items, nil
}
