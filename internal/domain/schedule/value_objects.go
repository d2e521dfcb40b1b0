package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrInvalidTimeFormat = errors.New("time must be formatted as HH:MM")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 and 6")
	ErrInvalidWindow     = errors.New("start time must be before end time")
)

// TimeOfDay is a minute-precision wall-clock time within a single day.
// Availability windows never cross midnight, so 00:00 to 23:59 is the full range.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// TimeOfDayFromMinutes reconstructs a value read back from the store.
func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{minutes: minutes}, nil
}

// TimeOfDayOf projects an absolute timestamp onto its wall-clock time in loc.
func TimeOfDayOf(t time.Time, loc *time.Location) TimeOfDay {
	local := t.In(loc)
	return TimeOfDay{minutes: local.Hour()*60 + local.Minute()}
}

func (t TimeOfDay) Minutes() int {
	return t.minutes
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Weekday is 0=Sunday through 6=Saturday, matching time.Weekday numbering.
type Weekday int

func NewWeekday(d int) (Weekday, error) {
	if d < 0 || d > 6 {
		return 0, ErrInvalidWeekday
	}
	return Weekday(d), nil
}

func WeekdayOf(t time.Time, loc *time.Location) Weekday {
	return Weekday(t.In(loc).Weekday())
}

func (d Weekday) Int() int {
	return int(d)
}

// Window is a half-open [start, end) wall-clock interval on one weekday.
type Window struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewWindow(start, end TimeOfDay) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() TimeOfDay {
	return w.start
}

func (w Window) End() TimeOfDay {
	return w.end
}

// Overlaps applies the half-open interval rule: [a,b) and [c,d) conflict
// iff a < d && b > c.
func (w Window) Overlaps(other Window) bool {
	return w.start.Minutes() < other.end.Minutes() && w.end.Minutes() > other.start.Minutes()
}

// Contains reports whether other lies entirely inside w.
func (w Window) Contains(other Window) bool {
	return w.start.Minutes() <= other.start.Minutes() && other.end.Minutes() <= w.end.Minutes()
}
