package schedule

import (
	"fmt"
	"time"

	"lessonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSlotOverlap    = errs.New("availability slots overlap")
	ErrEmptySlotBatch = errs.New("slot batch must not be empty")
)

// WeeklySlot is one recurring weekly open window published by a teacher.
type WeeklySlot struct {
	id        uuid.UUID
	teacherID uuid.UUID
	weekday   Weekday
	window    Window
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewWeeklySlot(teacherID uuid.UUID, weekday int, startTime, endTime string, active bool) (*WeeklySlot, error) {
	day, err := NewWeekday(weekday)
	if err != nil {
		return nil, err
	}

	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return nil, errs.Wrap(err, "start_time")
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return nil, errs.Wrap(err, "end_time")
	}

	// Cross-midnight spans surface here as start >= end and are rejected.
	window, err := NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	return &WeeklySlot{
		id:        uuid.New(),
		teacherID: teacherID,
		weekday:   day,
		window:    window,
		active:    active,
	}, nil
}

func ReconstructWeeklySlot(
	id, teacherID uuid.UUID,
	weekday Weekday,
	window Window,
	active bool,
	createdAt, updatedAt time.Time,
) *WeeklySlot {
	return &WeeklySlot{
		id:        id,
		teacherID: teacherID,
		weekday:   weekday,
		window:    window,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *WeeklySlot) ID() uuid.UUID        { return s.id }
func (s *WeeklySlot) TeacherID() uuid.UUID { return s.teacherID }
func (s *WeeklySlot) Weekday() Weekday     { return s.weekday }
func (s *WeeklySlot) Window() Window       { return s.window }
func (s *WeeklySlot) IsActive() bool       { return s.active }
func (s *WeeklySlot) CreatedAt() time.Time { return s.createdAt }
func (s *WeeklySlot) UpdatedAt() time.Time { return s.updatedAt }

// Overlaps reports whether two slots collide: same weekday, intersecting windows.
func (s *WeeklySlot) Overlaps(other *WeeklySlot) bool {
	if s.weekday != other.weekday {
		return false
	}
	return s.window.Overlaps(other.window)
}

// OverlapsWindow checks the slot against an arbitrary weekday/window pair.
func (s *WeeklySlot) OverlapsWindow(weekday Weekday, window Window) bool {
	return s.weekday == weekday && s.window.Overlaps(window)
}

// SlotSet is a teacher's complete weekly availability, validated as a batch.
// Replacement semantics: the set always replaces all prior slots at once.
type SlotSet struct {
	teacherID uuid.UUID
	slots     []*WeeklySlot
}

// NewSlotSet validates a submitted batch. No two active slots on the same
// weekday may overlap; the error names the offending pair by position.
func NewSlotSet(teacherID uuid.UUID, slots []*WeeklySlot) (*SlotSet, error) {
	if len(slots) == 0 {
		return nil, ErrEmptySlotBatch
	}

	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if !slots[i].active || !slots[j].active {
				continue
			}
			if slots[i].Overlaps(slots[j]) {
				return nil, errs.Mark(
					fmt.Errorf("slot %d (%s-%s) overlaps slot %d (%s-%s) on weekday %d",
						i, slots[i].window.Start(), slots[i].window.End(),
						j, slots[j].window.Start(), slots[j].window.End(),
						slots[i].weekday.Int()),
					ErrSlotOverlap,
				)
			}
		}
	}

	return &SlotSet{teacherID: teacherID, slots: slots}, nil
}

func (ss *SlotSet) TeacherID() uuid.UUID { return ss.teacherID }
func (ss *SlotSet) Slots() []*WeeklySlot { return ss.slots }

// Covers reports whether an absolute [start, end) interval lies entirely
// within one active slot. Slots are wall-clock recurring windows, so the
// interval is projected into loc first; intervals crossing midnight are
// never covered.
func (ss *SlotSet) Covers(start, end time.Time, loc *time.Location) bool {
	if !start.Before(end) {
		return false
	}
	if WeekdayOf(start, loc) != WeekdayOf(end.Add(-time.Minute), loc) {
		return false
	}

	window, err := NewWindow(TimeOfDayOf(start, loc), TimeOfDayOf(end, loc))
	if err != nil {
		return false
	}

	day := WeekdayOf(start, loc)
	for _, slot := range ss.slots {
		if slot.active && slot.weekday == day && slot.window.Contains(window) {
			return true
		}
	}
	return false
}
