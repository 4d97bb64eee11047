//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"viewing-scheduler/internal/domain/availability"
	"viewing-scheduler/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAvailability(t *testing.T, durationMin, bufferMin int, windows ...availability.WeeklyWindow) *availability.Availability {
	t.Helper()
	a, err := availability.NewAvailability(uuid.New(), "Asia/Dubai", durationMin, bufferMin, windows)
	require.NoError(t, err)
	return a
}

func window(t *testing.T, day int, start, end string) availability.WeeklyWindow {
	t.Helper()
	w, err := availability.NewWeeklyWindow(day, start, end)
	require.NoError(t, err)
	return w
}

func TestGenerate(t *testing.T) {
	avail := buildAvailability(t, 60, 30, window(t, 1, "09:00", "12:00"))
	loc := avail.Location()

	// 2026-03-02 is a Monday; "now" the evening before keeps all slots future.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, loc)

	t.Run("three hour window with 60+30 stepping yields exactly two slots", func(t *testing.T) {
		slots := schedule.Generate(avail, monday, monday, now)

		want := []schedule.TimeSlot{
			{Start: time.Date(2026, 3, 2, 9, 0, 0, 0, loc), End: time.Date(2026, 3, 2, 10, 0, 0, 0, loc)},
			{Start: time.Date(2026, 3, 2, 10, 30, 0, 0, loc), End: time.Date(2026, 3, 2, 11, 30, 0, 0, loc)},
		}
		assert.Empty(t, cmp.Diff(want, slots))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first := schedule.Generate(avail, monday, monday, now)
		second := schedule.Generate(avail, monday, monday, now)
		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("slots not strictly after now are dropped", func(t *testing.T) {
		lateMorning := time.Date(2026, 3, 2, 10, 30, 0, 0, loc)
		slots := schedule.Generate(avail, monday, monday, lateMorning)
		assert.Empty(t, slots, "a slot starting exactly at now is not bookable")

		midMorning := time.Date(2026, 3, 2, 9, 30, 0, 0, loc)
		slots = schedule.Generate(avail, monday, monday, midMorning)
		require.Len(t, slots, 1)
		assert.Equal(t, time.Date(2026, 3, 2, 10, 30, 0, 0, loc), slots[0].Start)
	})

	t.Run("days without windows yield nothing", func(t *testing.T) {
		tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, loc)
		slots := schedule.Generate(avail, tuesday, tuesday, now)
		assert.Empty(t, slots)
	})

	t.Run("the calendar day containing the range end is included", func(t *testing.T) {
		saturday := time.Date(2026, 2, 28, 0, 0, 0, 0, loc)
		slots := schedule.Generate(avail, saturday, monday, now)
		assert.Len(t, slots, 2, "a range ending at Monday midnight still covers Monday's window")
	})

	t.Run("multi-day range walks every matching weekday", func(t *testing.T) {
		nextMonday := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
		slots := schedule.Generate(avail, monday, nextMonday, now)
		assert.Len(t, slots, 4, "two Mondays, two slots each")
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		slots := schedule.Generate(avail, monday, monday.AddDate(0, 0, -1), now)
		assert.Nil(t, slots)
	})

	t.Run("zero buffer packs slots back to back", func(t *testing.T) {
		packed := buildAvailability(t, 60, 0, window(t, 1, "09:00", "12:00"))
		slots := schedule.Generate(packed, monday, monday, now)
		require.Len(t, slots, 3)
		assert.Equal(t, slots[0].End, slots[1].Start)
	})
}
