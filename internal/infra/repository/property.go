package repository

import (
	"context"

	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"
	"viewing-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.PropertySnapshot, error) {
	query := `SELECT id, agent_id, title, location FROM properties WHERE id = $1`

	var snapshot commands.PropertySnapshot
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&snapshot.ID, &snapshot.AgentID, &snapshot.Title, &snapshot.Location)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}
	return &snapshot, nil
}
