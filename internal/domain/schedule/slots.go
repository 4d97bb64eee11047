// Package schedule holds the pure slot arithmetic: lattice generation from
// weekly availability and conflict filtering against existing viewings.
// Nothing here touches a store or a clock; callers pass "now" in.
package schedule

import (
	"time"

	"viewing-scheduler/internal/domain/availability"
)

// TimeSlot is an ephemeral bookable interval. Generated, filtered, returned
// to the caller, never persisted.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Generate produces every bookable slot between rangeStart and rangeEnd
// (inclusive, interpreted as calendar days in the agent's zone), ignoring
// existing bookings. Within each matching weekly window it walks forward in
// steps of duration+buffer and emits a slot of length duration while the
// slot still fits the window. Slots that do not start strictly after now are
// dropped. Identical inputs yield identical output.
func Generate(avail *availability.Availability, rangeStart, rangeEnd, now time.Time) []TimeSlot {
	if avail == nil || rangeEnd.Before(rangeStart) {
		return nil
	}

	loc := avail.Location()
	duration := avail.ViewingDuration()
	step := avail.Step()

	day := startOfDay(rangeStart.In(loc))
	last := startOfDay(rangeEnd.In(loc))

	var slots []TimeSlot
	for !day.After(last) {
		for _, w := range avail.WindowsOn(day.Weekday()) {
			windowStart := w.Start().At(day, loc)
			windowEnd := w.End().At(day, loc)

			for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(step) {
				if !start.After(now) {
					continue
				}
				slots = append(slots, TimeSlot{Start: start, End: start.Add(duration)})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return slots
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
