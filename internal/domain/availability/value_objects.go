package availability

import (
	"fmt"
	"time"

	"viewing-scheduler/internal/pkg/errs"
)

var (
	ErrInvalidClockTime = errs.New("invalid HH:mm time")
	ErrInvalidWeekday   = errs.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrWindowInverted   = errs.New("window start must be before window end")
)

// ClockTime is a wall-clock time of day in the agent's zone, stored as
// minutes since midnight.
type ClockTime struct {
	minutes int
}

// ParseClockTime accepts exactly "HH:mm", zero-padded, 00:00 through 23:59.
func ParseClockTime(s string) (ClockTime, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: parsed.Hour()*60 + parsed.Minute()}, nil
}

func (t ClockTime) Minutes() int { return t.minutes }

func (t ClockTime) Before(other ClockTime) bool { return t.minutes < other.minutes }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// At anchors the clock time onto a calendar day in the given zone.
func (t ClockTime) At(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, loc)
}

// WeeklyWindow is one recurring open interval: a weekday plus wall-clock
// start and end times.
type WeeklyWindow struct {
	weekday time.Weekday
	start   ClockTime
	end     ClockTime
}

func NewWeeklyWindow(weekday int, start, end string) (WeeklyWindow, error) {
	if weekday < 0 || weekday > 6 {
		return WeeklyWindow{}, ErrInvalidWeekday
	}
	s, err := ParseClockTime(start)
	if err != nil {
		return WeeklyWindow{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return WeeklyWindow{}, err
	}
	if !s.Before(e) {
		return WeeklyWindow{}, ErrWindowInverted
	}
	return WeeklyWindow{weekday: time.Weekday(weekday), start: s, end: e}, nil
}

func (w WeeklyWindow) Weekday() time.Weekday { return w.weekday }
func (w WeeklyWindow) Start() ClockTime      { return w.start }
func (w WeeklyWindow) End() ClockTime        { return w.end }
