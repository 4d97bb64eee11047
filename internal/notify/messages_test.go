//go:build unit

package notify_test

import (
	"strings"
	"testing"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/notify"
	"viewing-scheduler/internal/reminder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageViewing(t *testing.T, customerName *string) *viewing.Viewing {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	scheduled := time.Date(2026, 3, 2, 10, 0, 0, 0, loc)
	v, err := viewing.NewViewing(
		uuid.New(), uuid.New(), uuid.New(),
		"+971501234567", customerName,
		scheduled, time.Hour, nil, scheduled.Add(-48*time.Hour),
	)
	require.NoError(t, err)
	return v
}

func TestCreatedMessage(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)

	t.Run("contains both languages and the local time", func(t *testing.T) {
		name := "Fatima"
		v := messageViewing(t, &name)
		msg := notify.CreatedMessage(v, "Marina View 2BR", "Dubai Marina", loc)

		assert.Contains(t, msg, "Hi Fatima!")
		assert.Contains(t, msg, "Marina View 2BR, Dubai Marina")
		assert.Contains(t, msg, "Monday, 2 Mar 2026 at 10:00")
		assert.Contains(t, msg, "تم حجز موعد معاينة")
	})

	t.Run("anonymous customer gets a plain greeting", func(t *testing.T) {
		v := messageViewing(t, nil)
		msg := notify.CreatedMessage(v, "Marina View 2BR", "", loc)
		assert.True(t, strings.HasPrefix(msg, "Hi! "))
		assert.NotContains(t, msg, ", \n", "empty location must not leave a dangling comma")
	})

	t.Run("nil zone falls back to UTC", func(t *testing.T) {
		v := messageViewing(t, nil)
		msg := notify.CreatedMessage(v, "Marina View 2BR", "", nil)
		assert.Contains(t, msg, "06:00", "10:00 GST is 06:00 UTC")
	})
}

func TestRescheduledMessage(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	v := messageViewing(t, nil)
	previous := v.ScheduledTime().Add(-24 * time.Hour)

	msg := notify.RescheduledMessage(v, "Marina View 2BR", "Dubai Marina", previous, loc)
	assert.Contains(t, msg, "Sunday, 1 Mar 2026 at 10:00")
	assert.Contains(t, msg, "Monday, 2 Mar 2026 at 10:00")
	assert.Contains(t, msg, "تم تغيير موعد معاينة")
}

func TestCancelledMessage(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	v := messageViewing(t, nil)

	msg := notify.CancelledMessage(v, "Marina View 2BR", "Dubai Marina", loc)
	assert.Contains(t, msg, "has been cancelled")
	assert.Contains(t, msg, "تم إلغاء موعد معاينة")
}

func TestReminderMessage(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	v := messageViewing(t, nil)

	t.Run("long lead says tomorrow", func(t *testing.T) {
		msg := notify.ReminderMessage(v, "Marina View 2BR", "Dubai Marina", reminder.KindLongLead, loc)
		assert.Contains(t, msg, "is tomorrow")
		assert.Contains(t, msg, "غداً")
	})

	t.Run("short lead says soon", func(t *testing.T) {
		msg := notify.ReminderMessage(v, "Marina View 2BR", "Dubai Marina", reminder.KindShortLead, loc)
		assert.Contains(t, msg, "is soon")
		assert.Contains(t, msg, "قريباً")
	})
}
