// Package notify is the confirmation-dispatcher boundary: it turns booking
// lifecycle events into bilingual customer messages and hands them to the
// messaging gateway. Booking success never depends on anything in here.
package notify

import (
	"context"
	"log/slog"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/pkg/errs"
	"viewing-scheduler/internal/reminder"
	"viewing-scheduler/internal/usecase/commands"
)

// Messenger is the outbound delivery gateway: send text to address.
type Messenger interface {
	SendText(ctx context.Context, phone, body string) error
}

type Dispatcher struct {
	messenger    Messenger
	propertyRepo commands.PropertyRepository
	availability commands.AvailabilityRepository
}

func NewDispatcher(messenger Messenger, propertyRepo commands.PropertyRepository, availability commands.AvailabilityRepository) *Dispatcher {
	return &Dispatcher{
		messenger:    messenger,
		propertyRepo: propertyRepo,
		availability: availability,
	}
}

// Notify implements the commands.Notifier port. Fire and forget: every
// failure is logged and swallowed, the booking mutation already succeeded.
func (d *Dispatcher) Notify(ctx context.Context, kind commands.NotificationKind, v *viewing.Viewing, previousTime *time.Time) {
	body, err := d.buildBody(ctx, kind, v, previousTime)
	if err != nil {
		slog.Error("notification formatting failed", "kind", string(kind), "viewing_id", v.ID(), "error", err.Error())
		return
	}

	if err := d.messenger.SendText(ctx, v.CustomerPhone(), body); err != nil {
		slog.Error("notification dispatch failed", "kind", string(kind), "viewing_id", v.ID(), "error", err.Error())
	}
}

// SendReminder implements the reminder.Dispatcher port. Unlike Notify this
// returns the delivery error so the job queue can retry with backoff.
func (d *Dispatcher) SendReminder(ctx context.Context, v *viewing.Viewing, kind reminder.Kind) error {
	title, location := d.propertyFields(ctx, v)
	loc := d.agentLocation(ctx, v)

	body := ReminderMessage(v, title, location, kind, loc)
	if err := d.messenger.SendText(ctx, v.CustomerPhone(), body); err != nil {
		return errs.Wrap(err, "reminder dispatch failed")
	}
	return nil
}

func (d *Dispatcher) buildBody(ctx context.Context, kind commands.NotificationKind, v *viewing.Viewing, previousTime *time.Time) (string, error) {
	title, location := d.propertyFields(ctx, v)
	loc := d.agentLocation(ctx, v)

	switch kind {
	case commands.NotificationCreated:
		return CreatedMessage(v, title, location, loc), nil
	case commands.NotificationRescheduled:
		if previousTime == nil {
			return "", errs.New("rescheduled notification requires the previous time")
		}
		return RescheduledMessage(v, title, location, *previousTime, loc), nil
	case commands.NotificationCancelled:
		return CancelledMessage(v, title, location, loc), nil
	default:
		return "", errs.New("unknown notification kind: " + string(kind))
	}
}

// propertyFields degrades to a generic label when the property store is
// unreachable; a blander message still beats no message.
func (d *Dispatcher) propertyFields(ctx context.Context, v *viewing.Viewing) (title, location string) {
	property, err := d.propertyRepo.FindByID(ctx, v.PropertyID())
	if err != nil {
		slog.Warn("property lookup for notification failed", "property_id", v.PropertyID(), "error", err.Error())
		return "the property", ""
	}
	return property.Title, property.Location
}

func (d *Dispatcher) agentLocation(ctx context.Context, v *viewing.Viewing) *time.Location {
	avail, err := d.availability.FindByAgent(ctx, v.AgentID())
	if err != nil {
		return time.UTC
	}
	return avail.Location()
}
