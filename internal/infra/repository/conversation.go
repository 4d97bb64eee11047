package repository

import (
	"context"

	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"
	"viewing-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ConversationSnapshot, error) {
	query := `SELECT id, agent_id, customer_phone, customer_name FROM conversations WHERE id = $1`

	var snapshot commands.ConversationSnapshot
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&snapshot.ID, &snapshot.AgentID, &snapshot.CustomerPhone, &snapshot.CustomerName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("conversation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find conversation", err)
	}
	return &snapshot, nil
}
