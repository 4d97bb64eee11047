package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/pkg/config"

	"github.com/google/uuid"
)

// ViewingStore is the worker's read/write slice of the booking store: it
// re-reads current state at fire time rather than trusting anything captured
// when the job was enqueued.
type ViewingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*viewing.Viewing, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// Dispatcher formats and delivers one reminder message. Errors propagate so
// the worker can retry with backoff.
type Dispatcher interface {
	SendReminder(ctx context.Context, v *viewing.Viewing, kind Kind) error
}

// Worker polls the job store for due reminders and executes them on its own
// timeline, independent of the booking API.
type Worker struct {
	store      JobStore
	viewings   ViewingStore
	dispatcher Dispatcher
	cfg        config.ReminderConfig
	clock      clock.Clock

	wg sync.WaitGroup
}

func NewWorker(store JobStore, viewings ViewingStore, dispatcher Dispatcher, cfg config.ReminderConfig, clk clock.Clock) *Worker {
	return &Worker{
		store:      store,
		viewings:   viewings,
		dispatcher: dispatcher,
		cfg:        cfg,
		clock:      clk,
	}
}

// Run blocks until ctx is cancelled, polling every cfg.PollInterval.
func (w *Worker) Run(ctx context.Context) error {
	t := time.NewTicker(w.cfg.PollInterval)
	defer t.Stop()

	// kick immediately
	w.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		case <-t.C:
			w.Tick(ctx)
		}
	}
}

// Tick claims one batch of due jobs and executes them concurrently.
func (w *Worker) Tick(ctx context.Context) {
	jobs, err := w.store.Due(ctx, w.clock.Now(), w.cfg.BatchSize)
	if err != nil {
		slog.Error("reminder worker: due jobs query failed", "error", err.Error())
		return
	}

	// A claimed job runs to completion: its row already sits in 'processing',
	// so cancelling mid-flight would strand it there. Shutdown only stops new
	// batches from being claimed; Run waits for in-flight jobs.
	jobCtx := context.WithoutCancel(ctx)
	for _, job := range jobs {
		job := job
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.execute(jobCtx, job)
		}()
	}
}

// execute runs one reminder job. The viewing is reloaded so cancellations
// and reschedules that landed after enqueue win: terminal viewings and
// already-reminded long-lead triggers are silent no-ops.
func (w *Worker) execute(ctx context.Context, job Job) {
	v, err := w.viewings.FindByID(ctx, job.ViewingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Viewing is gone; the job has nothing to do.
			w.discard(ctx, job)
			return
		}
		w.retry(ctx, job, err)
		return
	}

	if v.Status().IsTerminal() {
		w.discard(ctx, job)
		return
	}
	if job.Kind == KindLongLead && v.ReminderSent() {
		w.discard(ctx, job)
		return
	}

	if err := w.dispatcher.SendReminder(ctx, v, job.Kind); err != nil {
		w.retry(ctx, job, err)
		return
	}

	// Only the long-lead trigger is deduplicated by a persisted flag; the
	// short-lead one accepts at-most-one duplicate on a crash between
	// dispatch and delete.
	if job.Kind == KindLongLead {
		if err := w.viewings.MarkReminderSent(ctx, v.ID()); err != nil {
			slog.Error("reminder worker: failed to mark reminder sent", "viewing_id", v.ID(), "error", err.Error())
		}
	}

	w.discard(ctx, job)
}

func (w *Worker) discard(ctx context.Context, job Job) {
	if err := w.store.Delete(ctx, job.Key); err != nil {
		slog.Error("reminder worker: failed to delete job", "job_key", job.Key, "error", err.Error())
	}
}

// retry pushes the job's fire time forward with exponential backoff, or
// abandons it once the attempt budget is spent.
func (w *Worker) retry(ctx context.Context, job Job, cause error) {
	attempts := job.Attempts + 1
	if attempts >= w.cfg.MaxAttempts {
		slog.Error("reminder worker: job abandoned after retries",
			"job_key", job.Key, "attempts", attempts, "error", cause.Error())
		if err := w.store.Fail(ctx, job.Key, cause.Error()); err != nil {
			slog.Error("reminder worker: failed to mark job failed", "job_key", job.Key, "error", err.Error())
		}
		return
	}

	backoff := time.Duration(1<<uint(attempts)) * 30 * time.Second
	nextFireAt := w.clock.Now().Add(backoff)
	slog.Warn("reminder worker: job failed, will retry",
		"job_key", job.Key, "attempts", attempts, "next_fire_at", nextFireAt, "error", cause.Error())
	if err := w.store.Retry(ctx, job.Key, nextFireAt, cause.Error()); err != nil {
		slog.Error("reminder worker: failed to requeue job", "job_key", job.Key, "error", err.Error())
	}
}
