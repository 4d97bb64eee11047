package schedule

import (
	"time"

	"viewing-scheduler/internal/domain/availability"

	"github.com/google/uuid"
)

// Booking is the projection of an active viewing that conflict detection
// needs: its identity, start and length.
type Booking struct {
	ViewingID uuid.UUID
	Start     time.Time
	Duration  time.Duration
}

// exclusionEnd is the end of the half-open interval a booking removes from
// bookability: start + duration + buffer.
func (b Booking) exclusionEnd(buffer time.Duration) time.Time {
	return b.Start.Add(b.Duration + buffer)
}

// overlaps applies the half-open interval rule: [aStart,aEnd) and
// [bStart,bEnd) overlap iff aStart < bEnd && aEnd > bStart. Touching
// endpoints do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Filter drops every candidate slot whose interval overlaps the exclusion
// interval of any existing booking.
func Filter(candidates []TimeSlot, bookings []Booking, buffer time.Duration) []TimeSlot {
	if len(bookings) == 0 {
		return candidates
	}
	out := make([]TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if !conflictsAny(slot.Start, slot.End, bookings, buffer, uuid.Nil) {
			out = append(out, slot)
		}
	}
	return out
}

func conflictsAny(start, end time.Time, bookings []Booking, buffer time.Duration, exclude uuid.UUID) bool {
	for _, b := range bookings {
		if exclude != uuid.Nil && b.ViewingID == exclude {
			continue
		}
		if overlaps(start, end, b.Start, b.exclusionEnd(buffer)) {
			return true
		}
	}
	return false
}

// IsSlotAvailable is the single-slot variant used at booking and reschedule
// time. The requested start must fall inside a configured weekly window, and
// the candidate's own exclusion interval [start, start+duration+buffer) must
// not overlap any active booking's exclusion interval. duration may differ
// from the agent's default when the booking overrides it. exclude skips the
// viewing being rescheduled; pass uuid.Nil otherwise.
func IsSlotAvailable(avail *availability.Availability, start time.Time, duration time.Duration, bookings []Booking, exclude uuid.UUID) bool {
	if avail == nil {
		return false
	}
	if duration <= 0 {
		duration = avail.ViewingDuration()
	}
	if !avail.Contains(start, duration) {
		return false
	}
	end := start.Add(duration + avail.Buffer())
	return !conflictsAny(start, end, bookings, avail.Buffer(), exclude)
}
