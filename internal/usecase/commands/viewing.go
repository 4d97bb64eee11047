package commands

import (
	"context"
	"log/slog"
	"time"

	"viewing-scheduler/internal/domain/schedule"
	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPropertyNotFound        = errs.New("property not found")
	ErrConversationNotFound    = errs.New("conversation not found")
	ErrViewingNotFound         = errs.New("viewing not found")
	ErrSlotUnavailable         = errs.New("requested slot is not available")
	ErrIllegalStateTransition  = errs.New("illegal state transition")
	ErrInvalidViewingTime      = errs.New("invalid viewing time")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookViewingInput struct {
	ConversationID uuid.UUID
	PropertyID     uuid.UUID
	ScheduledTime  time.Time
	CustomerPhone  string
	CustomerName   *string
	DurationMin    *int
	Notes          *string
}

type RescheduleViewingInput struct {
	NewScheduledTime time.Time
	Notes            *string
}

type ViewingCommands interface {
	BookViewing(ctx context.Context, agentID uuid.UUID, input BookViewingInput) (*viewing.Viewing, error)
	RescheduleViewing(ctx context.Context, viewingID, agentID uuid.UUID, input RescheduleViewingInput) (*viewing.Viewing, error)
	CancelViewing(ctx context.Context, viewingID, agentID uuid.UUID, reason *string) (*viewing.Viewing, error)
	ConfirmViewing(ctx context.Context, viewingID, agentID uuid.UUID) (*viewing.Viewing, error)
	CompleteViewing(ctx context.Context, viewingID, agentID uuid.UUID) (*viewing.Viewing, error)
}

type viewingCommandsImpl struct {
	viewingRepo      ViewingRepository
	availabilityRepo AvailabilityRepository
	propertyRepo     PropertyRepository
	conversationRepo ConversationRepository
	reminders        ReminderScheduler
	notifier         Notifier
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewViewingCommands(
	viewingRepo ViewingRepository,
	availabilityRepo AvailabilityRepository,
	propertyRepo PropertyRepository,
	conversationRepo ConversationRepository,
	reminders ReminderScheduler,
	notifier Notifier,
	db *pgxpool.Pool,
	clk clock.Clock,
) ViewingCommands {
	return &viewingCommandsImpl{
		viewingRepo:      viewingRepo,
		availabilityRepo: availabilityRepo,
		propertyRepo:     propertyRepo,
		conversationRepo: conversationRepo,
		reminders:        reminders,
		notifier:         notifier,
		db:               db,
		clock:            clk,
	}
}

// BookViewing validates ownership, re-checks slot availability and persists
// the new viewing inside one transaction serialized per agent, then kicks
// off reminders and the created notification as best-effort side effects.
func (c *viewingCommandsImpl) BookViewing(ctx context.Context, agentID uuid.UUID, input BookViewingInput) (*viewing.Viewing, error) {
	property, err := c.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil || property.AgentID != agentID {
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil, ErrPropertyNotFound
	}

	conversation, err := c.conversationRepo.FindByID(ctx, input.ConversationID)
	if err != nil || conversation.AgentID != agentID {
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil, ErrConversationNotFound
	}

	avail, err := c.availabilityRepo.FindByAgent(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotUnavailable
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	duration := avail.ViewingDuration()
	if input.DurationMin != nil {
		if *input.DurationMin <= 0 {
			return nil, ErrInvalidViewingTime
		}
		duration = time.Duration(*input.DurationMin) * time.Minute
	}

	entity, err := viewing.NewViewing(
		agentID,
		input.PropertyID,
		input.ConversationID,
		input.CustomerPhone,
		input.CustomerName,
		input.ScheduledTime,
		duration,
		input.Notes,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidViewingTime)
	}

	err = c.withAgentLock(ctx, agentID, entity.ScheduledTime(), duration+avail.Buffer(), func(txc txContext) error {
		if !schedule.IsSlotAvailable(avail, entity.ScheduledTime(), duration, txc.bookings, uuid.Nil) {
			return ErrSlotUnavailable
		}
		return c.viewingRepo.Create(ctx, txc.tx, entity)
	})
	if err != nil {
		return nil, err
	}

	c.scheduleSideEffects(ctx, entity)
	c.notifier.Notify(ctx, NotificationCreated, entity, nil)

	return entity, nil
}

// RescheduleViewing moves an existing viewing to a new time. The viewing's
// own exclusion interval is ignored during the conflict check so a booking
// can shift inside its own window.
func (c *viewingCommandsImpl) RescheduleViewing(ctx context.Context, viewingID, agentID uuid.UUID, input RescheduleViewingInput) (*viewing.Viewing, error) {
	avail, err := c.availabilityRepo.FindByAgent(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotUnavailable
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var entity *viewing.Viewing
	var previousTime time.Time

	err = c.withAgentLock(ctx, agentID, input.NewScheduledTime, avail.ViewingDuration()+avail.Buffer(), func(txc txContext) error {
		entity, err = c.viewingRepo.FindByIDForUpdate(ctx, txc.tx, viewingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrViewingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if entity.AgentID() != agentID {
			return ErrViewingNotFound
		}

		previousTime = entity.ScheduledTime()

		if !schedule.IsSlotAvailable(avail, input.NewScheduledTime, entity.Duration(), txc.bookings, entity.ID()) {
			return ErrSlotUnavailable
		}

		if err := entity.Reschedule(input.NewScheduledTime, input.Notes, c.clock.Now()); err != nil {
			return markTransitionErr(err)
		}
		return c.viewingRepo.Update(ctx, txc.tx, entity)
	})
	if err != nil {
		return nil, err
	}

	if remErr := c.reminders.RescheduleReminders(ctx, entity.ID(), entity.ScheduledTime()); remErr != nil {
		slog.Error("failed to reschedule reminders", "viewing_id", entity.ID(), "error", remErr.Error())
	}
	c.notifier.Notify(ctx, NotificationRescheduled, entity, &previousTime)

	return entity, nil
}

// CancelViewing transitions to the cancelled terminal state, removes pending
// reminder jobs and fires a cancellation notification.
func (c *viewingCommandsImpl) CancelViewing(ctx context.Context, viewingID, agentID uuid.UUID, reason *string) (*viewing.Viewing, error) {
	entity, err := c.mutate(ctx, viewingID, agentID, func(v *viewing.Viewing) error {
		return v.Cancel(reason)
	})
	if err != nil {
		return nil, err
	}

	if remErr := c.reminders.CancelReminders(ctx, entity.ID()); remErr != nil {
		slog.Error("failed to cancel reminders", "viewing_id", entity.ID(), "error", remErr.Error())
	}
	c.notifier.Notify(ctx, NotificationCancelled, entity, nil)

	return entity, nil
}

func (c *viewingCommandsImpl) ConfirmViewing(ctx context.Context, viewingID, agentID uuid.UUID) (*viewing.Viewing, error) {
	return c.mutate(ctx, viewingID, agentID, func(v *viewing.Viewing) error {
		return v.Confirm()
	})
}

func (c *viewingCommandsImpl) CompleteViewing(ctx context.Context, viewingID, agentID uuid.UUID) (*viewing.Viewing, error) {
	entity, err := c.mutate(ctx, viewingID, agentID, func(v *viewing.Viewing) error {
		return v.Complete()
	})
	if err != nil {
		return nil, err
	}

	if remErr := c.reminders.CancelReminders(ctx, entity.ID()); remErr != nil {
		slog.Error("failed to cancel reminders", "viewing_id", entity.ID(), "error", remErr.Error())
	}
	return entity, nil
}

// mutate loads the viewing under a row lock, applies the transition and
// persists the result. Time-changing transitions go through withAgentLock
// instead because they need the conflict re-check.
func (c *viewingCommandsImpl) mutate(ctx context.Context, viewingID, agentID uuid.UUID, fn func(*viewing.Viewing) error) (*viewing.Viewing, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errs.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr.Error())
		}
	}()

	entity, err := c.viewingRepo.FindByIDForUpdate(ctx, tx, viewingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrViewingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if entity.AgentID() != agentID {
		return nil, ErrViewingNotFound
	}

	if err := fn(entity); err != nil {
		return nil, markTransitionErr(err)
	}

	if err := c.viewingRepo.Update(ctx, tx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

type txContext struct {
	tx       pgx.Tx
	bookings []schedule.Booking
}

// withAgentLock opens a transaction, takes the per-agent advisory lock,
// loads the active bookings around the candidate time and runs fn. The
// availability check and the write are atomic relative to any concurrent
// booking for the same agent.
func (c *viewingCommandsImpl) withAgentLock(ctx context.Context, agentID uuid.UUID, around time.Time, span time.Duration, fn func(txContext) error) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errs.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr.Error())
		}
	}()

	if err := c.viewingRepo.LockAgent(ctx, tx, agentID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// One day either side comfortably covers any exclusion interval
	// bleeding into the candidate slot.
	bookings, err := c.viewingRepo.FindActiveByAgentTx(ctx, tx, agentID, around.Add(-24*time.Hour), around.Add(span).Add(24*time.Hour))
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := fn(txContext{tx: tx, bookings: bookings}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *viewingCommandsImpl) scheduleSideEffects(ctx context.Context, v *viewing.Viewing) {
	if err := c.reminders.ScheduleReminders(ctx, v.ID(), v.ScheduledTime()); err != nil {
		slog.Error("failed to schedule reminders", "viewing_id", v.ID(), "error", err.Error())
	}
}

func markTransitionErr(err error) error {
	switch {
	case errs.Is(err, viewing.ErrTerminalState), errs.Is(err, viewing.ErrAlreadyCancelled):
		return errs.Mark(err, ErrIllegalStateTransition)
	case errs.Is(err, viewing.ErrPastTime):
		return errs.Mark(err, ErrInvalidViewingTime)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
