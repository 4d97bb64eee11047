package queries

import (
	"context"
	"time"

	"viewing-scheduler/internal/domain/availability"
	"viewing-scheduler/internal/domain/schedule"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAvailabilityNotSet = errs.New("availability not set for agent")

type AvailabilityReadStore interface {
	FindByAgent(ctx context.Context, agentID uuid.UUID) (*availability.Availability, error)
}

// ActiveBookingStore returns the conflict-detection projection of every
// scheduled or confirmed viewing touching the given range.
type ActiveBookingStore interface {
	FindActiveByAgent(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]schedule.Booking, error)
}

type SlotQueries interface {
	AvailableSlots(ctx context.Context, agentID uuid.UUID, rangeStart, rangeEnd time.Time) ([]SlotView, error)
	Availability(ctx context.Context, agentID uuid.UUID) (*AvailabilityView, error)
}

type slotQueriesImpl struct {
	availabilityStore AvailabilityReadStore
	bookingStore      ActiveBookingStore
	clock             clock.Clock
}

func NewSlotQueries(availabilityStore AvailabilityReadStore, bookingStore ActiveBookingStore, clk clock.Clock) SlotQueries {
	return &slotQueriesImpl{
		availabilityStore: availabilityStore,
		bookingStore:      bookingStore,
		clock:             clk,
	}
}

// AvailableSlots generates the full slot lattice for the range, then filters
// out everything overlapping an active booking's exclusion interval. Pure
// computation either side of the two reads.
func (q *slotQueriesImpl) AvailableSlots(ctx context.Context, agentID uuid.UUID, rangeStart, rangeEnd time.Time) ([]SlotView, error) {
	avail, err := q.availabilityStore.FindByAgent(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAvailabilityNotSet
		}
		return nil, errs.Wrap(err, "failed to load availability")
	}

	candidates := schedule.Generate(avail, rangeStart, rangeEnd, q.clock.Now())
	if len(candidates) == 0 {
		return []SlotView{}, nil
	}

	// Widen the booking window by a day either side so bookings whose
	// exclusion interval leaks into the range are still considered.
	bookings, err := q.bookingStore.FindActiveByAgent(ctx, agentID, rangeStart.AddDate(0, 0, -1), rangeEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, errs.Wrap(err, "failed to load active viewings")
	}

	free := schedule.Filter(candidates, bookings, avail.Buffer())
	out := make([]SlotView, len(free))
	for i, s := range free {
		out[i] = SlotView{StartTime: s.Start, EndTime: s.End}
	}
	return out, nil
}

func (q *slotQueriesImpl) Availability(ctx context.Context, agentID uuid.UUID) (*AvailabilityView, error) {
	avail, err := q.availabilityStore.FindByAgent(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAvailabilityNotSet
		}
		return nil, errs.Wrap(err, "failed to load availability")
	}

	windows := avail.Windows()
	views := make([]WindowView, len(windows))
	for i, w := range windows {
		views[i] = WindowView{
			DayOfWeek: int(w.Weekday()),
			StartTime: w.Start().String(),
			EndTime:   w.End().String(),
		}
	}
	return &AvailabilityView{
		AgentID:            avail.AgentID(),
		Timezone:           avail.Timezone(),
		ViewingDurationMin: int(avail.ViewingDuration().Minutes()),
		BufferMin:          int(avail.Buffer().Minutes()),
		Windows:            views,
		UpdatedAt:          avail.UpdatedAt(),
	}, nil
}
