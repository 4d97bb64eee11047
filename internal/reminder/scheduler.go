// Package reminder implements the durable delayed-job subsystem that sends
// the long-lead and short-lead reminders for every active viewing.
package reminder

import (
	"context"
	"fmt"
	"time"

	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

type Kind string

const (
	KindLongLead  Kind = "long_lead"
	KindShortLead Kind = "short_lead"
)

// Job is one pending reminder trigger. Key is derived from the viewing id
// and the kind, so at most one job of each kind exists per viewing: an
// upsert on the key replaces the previous trigger instead of duplicating it.
type Job struct {
	Key       string
	ViewingID uuid.UUID
	Kind      Kind
	FireAt    time.Time
	Attempts  int32
}

func JobKey(viewingID uuid.UUID, kind Kind) string {
	return fmt.Sprintf("%s-%s", viewingID, kind)
}

// JobStore is the durable queue. Upsert must replace an existing job with
// the same key (resetting its attempts); Delete calls are no-ops for absent
// keys.
type JobStore interface {
	Upsert(ctx context.Context, job Job) error
	DeleteByViewing(ctx context.Context, viewingID uuid.UUID) error
	Delete(ctx context.Context, key string) error
	Due(ctx context.Context, now time.Time, limit int32) ([]Job, error)
	Retry(ctx context.Context, key string, nextFireAt time.Time, lastError string) error
	Fail(ctx context.Context, key string, lastError string) error
}

type Scheduler struct {
	store JobStore
	cfg   config.ReminderConfig
	clock clock.Clock
}

func NewScheduler(store JobStore, cfg config.ReminderConfig, clk clock.Clock) *Scheduler {
	return &Scheduler{store: store, cfg: cfg, clock: clk}
}

// ScheduleReminders enqueues the long-lead and short-lead triggers for a
// viewing. Triggers whose fire time already passed are skipped silently: a
// booking made inside the long-lead window only gets the short-lead
// reminder, and one made inside the short-lead window gets neither.
func (s *Scheduler) ScheduleReminders(ctx context.Context, viewingID uuid.UUID, scheduledTime time.Time) error {
	now := s.clock.Now()
	triggers := []struct {
		kind   Kind
		fireAt time.Time
	}{
		{KindLongLead, scheduledTime.Add(-s.cfg.LongLead)},
		{KindShortLead, scheduledTime.Add(-s.cfg.ShortLead)},
	}

	for _, t := range triggers {
		if !t.fireAt.After(now) {
			continue
		}
		job := Job{
			Key:       JobKey(viewingID, t.kind),
			ViewingID: viewingID,
			Kind:      t.kind,
			FireAt:    t.fireAt,
		}
		if err := s.store.Upsert(ctx, job); err != nil {
			return errs.Wrapf(err, "failed to enqueue %s reminder", t.kind)
		}
	}
	return nil
}

// CancelReminders removes both job keys. Safe when no jobs exist.
func (s *Scheduler) CancelReminders(ctx context.Context, viewingID uuid.UUID) error {
	return s.store.DeleteByViewing(ctx, viewingID)
}

// RescheduleReminders is cancel followed by schedule against the new time.
func (s *Scheduler) RescheduleReminders(ctx context.Context, viewingID uuid.UUID, newTime time.Time) error {
	if err := s.CancelReminders(ctx, viewingID); err != nil {
		return err
	}
	return s.ScheduleReminders(ctx, viewingID, newTime)
}
