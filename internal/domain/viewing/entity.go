package viewing

import (
	"strings"
	"time"

	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTerminalState    = errs.New("viewing is in a terminal state")
	ErrAlreadyCancelled = errs.New("viewing is already cancelled")
	ErrNotActive        = errs.New("viewing is not active")
	ErrPastTime         = errs.New("scheduled time must be in the future")
	ErrInvalidDuration  = errs.New("duration must be positive")
)

// Viewing is a single booked appointment. The use-case layer is the sole
// writer; everything else reads.
type Viewing struct {
	id             uuid.UUID
	agentID        uuid.UUID
	propertyID     uuid.UUID
	conversationID uuid.UUID
	customerPhone  string
	customerName   *string
	scheduledTime  time.Time
	duration       time.Duration
	status         Status
	notes          *string
	reminderSent   bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewViewing(
	agentID, propertyID, conversationID uuid.UUID,
	customerPhone string,
	customerName *string,
	scheduledTime time.Time,
	duration time.Duration,
	notes *string,
	now time.Time,
) (*Viewing, error) {
	if !scheduledTime.After(now) {
		return nil, ErrPastTime
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Viewing{
		id:             uuid.New(),
		agentID:        agentID,
		propertyID:     propertyID,
		conversationID: conversationID,
		customerPhone:  customerPhone,
		customerName:   customerName,
		scheduledTime:  scheduledTime,
		duration:       duration,
		status:         StatusScheduled,
		notes:          notes,
	}, nil
}

func Reconstruct(
	id, agentID, propertyID, conversationID uuid.UUID,
	customerPhone string,
	customerName *string,
	scheduledTime time.Time,
	duration time.Duration,
	status Status,
	notes *string,
	reminderSent bool,
	createdAt, updatedAt time.Time,
) *Viewing {
	return &Viewing{
		id:             id,
		agentID:        agentID,
		propertyID:     propertyID,
		conversationID: conversationID,
		customerPhone:  customerPhone,
		customerName:   customerName,
		scheduledTime:  scheduledTime,
		duration:       duration,
		status:         status,
		notes:          notes,
		reminderSent:   reminderSent,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Confirm moves a scheduled viewing to confirmed.
func (v *Viewing) Confirm() error {
	if v.status.IsTerminal() {
		return ErrTerminalState
	}
	v.status = StatusConfirmed
	return nil
}

// Reschedule moves the viewing to a new time. The status drops back to
// scheduled and the long-lead reminder flag resets so the new cycle of
// reminders runs in full.
func (v *Viewing) Reschedule(newTime time.Time, notes *string, now time.Time) error {
	if v.status.IsTerminal() {
		return ErrTerminalState
	}
	if !newTime.After(now) {
		return ErrPastTime
	}
	v.scheduledTime = newTime
	v.status = StatusScheduled
	v.reminderSent = false
	if notes != nil {
		v.notes = notes
	}
	return nil
}

// Cancel puts the viewing in its cancelled terminal state and appends the
// reason to the notes.
func (v *Viewing) Cancel(reason *string) error {
	if v.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if v.status.IsTerminal() {
		return ErrTerminalState
	}
	v.status = StatusCancelled
	if reason != nil && strings.TrimSpace(*reason) != "" {
		appended := "Cancelled: " + *reason
		if v.notes != nil && *v.notes != "" {
			appended = *v.notes + "\n" + appended
		}
		v.notes = &appended
	}
	return nil
}

// Complete marks the appointment as held. Triggered externally after the
// appointment time elapses; the engine only enforces legality.
func (v *Viewing) Complete() error {
	if v.status.IsTerminal() {
		return ErrTerminalState
	}
	v.status = StatusCompleted
	return nil
}

func (v *Viewing) MarkReminderSent() {
	v.reminderSent = true
}

func (v *Viewing) EndTime() time.Time {
	return v.scheduledTime.Add(v.duration)
}

func (v *Viewing) ID() uuid.UUID             { return v.id }
func (v *Viewing) AgentID() uuid.UUID        { return v.agentID }
func (v *Viewing) PropertyID() uuid.UUID     { return v.propertyID }
func (v *Viewing) ConversationID() uuid.UUID { return v.conversationID }
func (v *Viewing) CustomerPhone() string     { return v.customerPhone }
func (v *Viewing) CustomerName() *string     { return v.customerName }
func (v *Viewing) ScheduledTime() time.Time  { return v.scheduledTime }
func (v *Viewing) Duration() time.Duration   { return v.duration }
func (v *Viewing) Status() Status            { return v.status }
func (v *Viewing) Notes() *string            { return v.notes }
func (v *Viewing) ReminderSent() bool        { return v.reminderSent }
func (v *Viewing) CreatedAt() time.Time      { return v.createdAt }
func (v *Viewing) UpdatedAt() time.Time      { return v.updatedAt }
