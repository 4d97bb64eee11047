//go:build unit

package reminder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/clock"
	"viewing-scheduler/internal/reminder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewingStore struct {
	mu       sync.Mutex
	viewings map[uuid.UUID]*viewing.Viewing
	marked   []uuid.UUID
}

func newFakeViewingStore() *fakeViewingStore {
	return &fakeViewingStore{viewings: make(map[uuid.UUID]*viewing.Viewing)}
}

func (s *fakeViewingStore) put(v *viewing.Viewing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewings[v.ID()] = v
}

func (s *fakeViewingStore) FindByID(_ context.Context, id uuid.UUID) (*viewing.Viewing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.viewings[id]
	if !ok {
		return nil, infra.WrapRepoErr("viewing not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func (s *fakeViewingStore) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, id)
	if v, ok := s.viewings[id]; ok {
		v.MarkReminderSent()
	}
	return nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	sent  []reminder.Kind
	fail  bool
	errTo error
}

func (d *fakeDispatcher) SendReminder(_ context.Context, _ *viewing.Viewing, kind reminder.Kind) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		if d.errTo == nil {
			d.errTo = errors.New("gateway unreachable")
		}
		return d.errTo
	}
	d.sent = append(d.sent, kind)
	return nil
}

func (d *fakeDispatcher) sentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

// haltingDispatcher fails delivery and cancels the worker context first,
// simulating a shutdown landing in the middle of a job.
type haltingDispatcher struct {
	cancel context.CancelFunc
}

func (d *haltingDispatcher) SendReminder(_ context.Context, _ *viewing.Viewing, _ reminder.Kind) error {
	d.cancel()
	return errors.New("connection reset by shutdown")
}

// ctxSensitiveJobStore refuses bookkeeping on a dead context, like the real
// pgx-backed store would.
type ctxSensitiveJobStore struct {
	*fakeJobStore
}

func (s *ctxSensitiveJobStore) Retry(ctx context.Context, key string, nextFireAt time.Time, lastError string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeJobStore.Retry(ctx, key, nextFireAt, lastError)
}

func (s *ctxSensitiveJobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeJobStore.Delete(ctx, key)
}

func activeViewing(t *testing.T, scheduledTime time.Time) *viewing.Viewing {
	t.Helper()
	now := scheduledTime.Add(-48 * time.Hour)
	v, err := viewing.NewViewing(
		uuid.New(), uuid.New(), uuid.New(),
		"+971501234567", nil,
		scheduledTime, time.Hour, nil, now,
	)
	require.NoError(t, err)
	return v
}

func enqueueDue(t *testing.T, store *fakeJobStore, viewingID uuid.UUID, kind reminder.Kind, fireAt time.Time) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), reminder.Job{
		Key:       reminder.JobKey(viewingID, kind),
		ViewingID: viewingID,
		Kind:      kind,
		FireAt:    fireAt,
	}))
}

func TestWorkerTick(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	scheduledTime := now.Add(2 * time.Hour)

	t.Run("due long-lead job sends and sets the dedupe flag", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		viewings.put(v)
		enqueueDue(t, store, v.ID(), reminder.KindLongLead, now.Add(-time.Minute))

		w.Tick(ctx)

		assert.Eventually(t, func() bool {
			return dispatcher.sentCount() == 1 && store.count() == 0
		}, time.Second, 10*time.Millisecond)
		assert.True(t, v.ReminderSent())
	})

	t.Run("short-lead job sends without touching the flag", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		viewings.put(v)
		enqueueDue(t, store, v.ID(), reminder.KindShortLead, now.Add(-time.Minute))

		w.Tick(ctx)

		assert.Eventually(t, func() bool {
			return dispatcher.sentCount() == 1 && store.count() == 0
		}, time.Second, 10*time.Millisecond)
		assert.False(t, v.ReminderSent())
	})

	t.Run("job for a cancelled viewing is discarded silently", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		require.NoError(t, v.Cancel(nil))
		viewings.put(v)
		enqueueDue(t, store, v.ID(), reminder.KindShortLead, now.Add(-time.Minute))

		w.Tick(ctx)

		assert.Eventually(t, func() bool { return store.count() == 0 }, time.Second, 10*time.Millisecond)
		assert.Zero(t, dispatcher.sentCount())
	})

	t.Run("job for a vanished viewing is discarded", func(t *testing.T) {
		store := newFakeJobStore()
		dispatcher := &fakeDispatcher{}
		w := reminder.NewWorker(store, newFakeViewingStore(), dispatcher, testReminderConfig(), clock.NewMockClock(now))

		enqueueDue(t, store, uuid.New(), reminder.KindLongLead, now.Add(-time.Minute))
		w.Tick(ctx)

		assert.Eventually(t, func() bool { return store.count() == 0 }, time.Second, 10*time.Millisecond)
		assert.Zero(t, dispatcher.sentCount())
	})

	t.Run("already-sent long-lead reminder is not repeated", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		v.MarkReminderSent()
		viewings.put(v)
		enqueueDue(t, store, v.ID(), reminder.KindLongLead, now.Add(-time.Minute))

		w.Tick(ctx)

		assert.Eventually(t, func() bool { return store.count() == 0 }, time.Second, 10*time.Millisecond)
		assert.Zero(t, dispatcher.sentCount())
	})

	t.Run("delivery failure requeues with backoff", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{fail: true}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		viewings.put(v)
		key := reminder.JobKey(v.ID(), reminder.KindShortLead)
		enqueueDue(t, store, v.ID(), reminder.KindShortLead, now.Add(-time.Minute))

		w.Tick(ctx)

		assert.Eventually(t, func() bool {
			job, ok := store.get(key)
			return ok && job.Attempts == 1
		}, time.Second, 10*time.Millisecond)

		job, ok := store.get(key)
		require.True(t, ok)
		assert.Equal(t, now.Add(time.Minute), job.FireAt, "first retry backs off 2^1 * 30s")
	})

	t.Run("cancellation during delivery still requeues the job", func(t *testing.T) {
		base := newFakeJobStore()
		store := &ctxSensitiveJobStore{fakeJobStore: base}
		viewings := newFakeViewingStore()
		tickCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		dispatcher := &haltingDispatcher{cancel: cancel}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		viewings.put(v)
		key := reminder.JobKey(v.ID(), reminder.KindShortLead)
		enqueueDue(t, base, v.ID(), reminder.KindShortLead, now.Add(-time.Minute))

		w.Tick(tickCtx)

		// the retry must land even though tickCtx died mid-flight, or the
		// job would sit in processing forever
		assert.Eventually(t, func() bool {
			job, ok := base.get(key)
			return ok && job.Attempts == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("attempt budget exhaustion abandons the job", func(t *testing.T) {
		store := newFakeJobStore()
		viewings := newFakeViewingStore()
		dispatcher := &fakeDispatcher{fail: true}
		w := reminder.NewWorker(store, viewings, dispatcher, testReminderConfig(), clock.NewMockClock(now))

		v := activeViewing(t, scheduledTime)
		viewings.put(v)
		key := reminder.JobKey(v.ID(), reminder.KindShortLead)
		enqueueDue(t, store, v.ID(), reminder.KindShortLead, now.Add(-time.Minute))
		require.NoError(t, store.Retry(ctx, key, now.Add(-time.Minute), "boom"))
		require.NoError(t, store.Retry(ctx, key, now.Add(-time.Minute), "boom"))

		w.Tick(ctx)

		assert.Eventually(t, func() bool {
			store.mu.Lock()
			defer store.mu.Unlock()
			return len(store.failed) == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, 0, store.count())
	})
}

func TestWorkerRun(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stops on context cancellation", func(t *testing.T) {
		cfg := testReminderConfig()
		cfg.PollInterval = 10 * time.Millisecond
		w := reminder.NewWorker(newFakeJobStore(), newFakeViewingStore(), &fakeDispatcher{}, cfg, clock.NewMockClock(now))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		time.Sleep(30 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("worker did not stop after cancellation")
		}
	})
}
