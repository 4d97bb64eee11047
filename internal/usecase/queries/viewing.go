package queries

import (
	"context"

	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrViewingNotFound = errs.New("viewing not found")

type ViewingReadStore interface {
	FindView(ctx context.Context, agentID, id uuid.UUID) (*ViewingView, error)
	ListViews(ctx context.Context, agentID uuid.UUID, filters ViewingFilters) ([]*ViewingListItem, error)
}

type ViewingQueries interface {
	GetByID(ctx context.Context, agentID, id uuid.UUID) (*ViewingView, error)
	List(ctx context.Context, agentID uuid.UUID, filters ViewingFilters) ([]*ViewingListItem, error)
}

type viewingQueriesImpl struct {
	store ViewingReadStore
}

func NewViewingQueries(store ViewingReadStore) ViewingQueries {
	return &viewingQueriesImpl{store: store}
}

func (q *viewingQueriesImpl) GetByID(ctx context.Context, agentID, id uuid.UUID) (*ViewingView, error) {
	view, err := q.store.FindView(ctx, agentID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrViewingNotFound
		}
		return nil, errs.Wrap(err, "failed to load viewing")
	}
	return view, nil
}

func (q *viewingQueriesImpl) List(ctx context.Context, agentID uuid.UUID, filters ViewingFilters) ([]*ViewingListItem, error) {
	return q.store.ListViews(ctx, agentID, filters)
}
