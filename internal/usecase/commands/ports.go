package commands

import (
	"context"
	"time"

	"viewing-scheduler/internal/domain/availability"
	"viewing-scheduler/internal/domain/schedule"
	"viewing-scheduler/internal/domain/viewing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ViewingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, v *viewing.Viewing) error
	Update(ctx context.Context, tx pgx.Tx, v *viewing.Viewing) error
	FindByID(ctx context.Context, id uuid.UUID) (*viewing.Viewing, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*viewing.Viewing, error)
	FindActiveByAgentTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, from, to time.Time) ([]schedule.Booking, error)
	// LockAgent serializes concurrent bookings for one agent inside the
	// transaction (advisory lock released at commit/rollback).
	LockAgent(ctx context.Context, tx pgx.Tx, agentID uuid.UUID) error
}

type AvailabilityRepository interface {
	Replace(ctx context.Context, a *availability.Availability) error
	FindByAgent(ctx context.Context, agentID uuid.UUID) (*availability.Availability, error)
}

// PropertySnapshot is the slice of the external property store this engine
// needs: ownership plus display fields for notifications.
type PropertySnapshot struct {
	ID       uuid.UUID
	AgentID  uuid.UUID
	Title    string
	Location string
}

type ConversationSnapshot struct {
	ID            uuid.UUID
	AgentID       uuid.UUID
	CustomerPhone string
	CustomerName  *string
}

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
}

type ConversationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ConversationSnapshot, error)
}

// ReminderScheduler owns the delayed reminder jobs for a viewing. Injected
// into the booking commands at construction; failures are best-effort from
// the booking caller's point of view.
type ReminderScheduler interface {
	ScheduleReminders(ctx context.Context, viewingID uuid.UUID, scheduledTime time.Time) error
	CancelReminders(ctx context.Context, viewingID uuid.UUID) error
	RescheduleReminders(ctx context.Context, viewingID uuid.UUID, newTime time.Time) error
}

type NotificationKind string

const (
	NotificationCreated     NotificationKind = "created"
	NotificationRescheduled NotificationKind = "rescheduled"
	NotificationCancelled   NotificationKind = "cancelled"
)

// Notifier is the confirmation-dispatcher boundary. Fire and forget: the
// implementation logs its own failures and never surfaces them here.
type Notifier interface {
	Notify(ctx context.Context, kind NotificationKind, v *viewing.Viewing, previousTime *time.Time)
}
