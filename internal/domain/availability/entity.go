package availability

import (
	"sort"
	"time"

	"viewing-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoWindows       = errs.New("at least one weekly window is required")
	ErrInvalidTimezone = errs.New("unknown IANA timezone")
	ErrInvalidDuration = errs.New("viewing duration must be positive")
	ErrNegativeBuffer  = errs.New("buffer must not be negative")
)

// Availability is an agent's full weekly booking surface. It is replaced
// wholesale on every set call; there are no partial updates.
type Availability struct {
	agentID         uuid.UUID
	location        *time.Location
	viewingDuration time.Duration
	buffer          time.Duration
	windows         []WeeklyWindow
	updatedAt       time.Time
}

func NewAvailability(
	agentID uuid.UUID,
	timezone string,
	viewingDurationMin int,
	bufferMin int,
	windows []WeeklyWindow,
) (*Availability, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	if viewingDurationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if bufferMin < 0 {
		return nil, ErrNegativeBuffer
	}
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}

	sorted := make([]WeeklyWindow, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weekday() != sorted[j].Weekday() {
			return sorted[i].Weekday() < sorted[j].Weekday()
		}
		return sorted[i].Start().Before(sorted[j].Start())
	})

	return &Availability{
		agentID:         agentID,
		location:        loc,
		viewingDuration: time.Duration(viewingDurationMin) * time.Minute,
		buffer:          time.Duration(bufferMin) * time.Minute,
		windows:         sorted,
	}, nil
}

func ReconstructAvailability(
	agentID uuid.UUID,
	timezone string,
	viewingDurationMin int,
	bufferMin int,
	windows []WeeklyWindow,
	updatedAt time.Time,
) (*Availability, error) {
	a, err := NewAvailability(agentID, timezone, viewingDurationMin, bufferMin, windows)
	if err != nil {
		return nil, err
	}
	a.updatedAt = updatedAt
	return a, nil
}

func (a *Availability) AgentID() uuid.UUID             { return a.agentID }
func (a *Availability) Location() *time.Location       { return a.location }
func (a *Availability) Timezone() string               { return a.location.String() }
func (a *Availability) ViewingDuration() time.Duration { return a.viewingDuration }
func (a *Availability) Buffer() time.Duration          { return a.buffer }
func (a *Availability) UpdatedAt() time.Time           { return a.updatedAt }

// Windows returns the weekly windows sorted by weekday then start time.
func (a *Availability) Windows() []WeeklyWindow {
	out := make([]WeeklyWindow, len(a.windows))
	copy(out, a.windows)
	return out
}

func (a *Availability) WindowsOn(day time.Weekday) []WeeklyWindow {
	var out []WeeklyWindow
	for _, w := range a.windows {
		if w.Weekday() == day {
			out = append(out, w)
		}
	}
	return out
}

// Step is the stride the slot generator walks a window with.
func (a *Availability) Step() time.Duration {
	return a.viewingDuration + a.buffer
}

// Contains reports whether a viewing starting at t fits entirely inside one
// of the weekly windows, evaluated as wall-clock time in the agent's zone.
func (a *Availability) Contains(t time.Time, duration time.Duration) bool {
	local := t.In(a.location)
	startMin := local.Hour()*60 + local.Minute()
	endMin := startMin + int(duration/time.Minute)
	for _, w := range a.WindowsOn(local.Weekday()) {
		if startMin >= w.Start().Minutes() && endMin <= w.End().Minutes() {
			return true
		}
	}
	return false
}
