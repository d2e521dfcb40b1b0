//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"lessonbook/internal/domain/schedule"
	"lessonbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.SlotBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewSlotBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			slot, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, slot)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, slot)
		})
	}
}

func TestNewWeeklySlot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		teacherID := uuid.New()
		slot, err := builder.NewSlotBuilder().WithTeacherID(teacherID).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, slot)

		assert.NotEqual(t, uuid.Nil, slot.ID())
		assert.Equal(t, teacherID, slot.TeacherID())
		assert.Equal(t, 1, slot.Weekday().Int())
		assert.Equal(t, "09:00", slot.Window().Start().String())
		assert.Equal(t, "12:00", slot.Window().End().String())
		assert.True(t, slot.IsActive())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "weekday lower bound",
				mutate: func(b *builder.SlotBuilder) { b.WithWeekday(0) },
			},
			{
				name:   "weekday upper bound",
				mutate: func(b *builder.SlotBuilder) { b.WithWeekday(6) },
			},
			{
				name:   "weekday below range",
				mutate: func(b *builder.SlotBuilder) { b.WithWeekday(-1) },
				errIs:  schedule.ErrInvalidWeekday,
			},
			{
				name:   "weekday above range",
				mutate: func(b *builder.SlotBuilder) { b.WithWeekday(7) },
				errIs:  schedule.ErrInvalidWeekday,
			},
			{
				name:   "malformed start time",
				mutate: func(b *builder.SlotBuilder) { b.WithStartTime("9am") },
				errIs:  schedule.ErrInvalidTimeFormat,
			},
			{
				name:   "malformed end time",
				mutate: func(b *builder.SlotBuilder) { b.WithEndTime("25:00") },
				errIs:  schedule.ErrInvalidTimeFormat,
			},
			{
				name:   "start equals end",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow("09:00", "09:00") },
				errIs:  schedule.ErrInvalidWindow,
			},
			{
				name:   "cross-midnight span",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow("22:00", "02:00") },
				errIs:  schedule.ErrInvalidWindow,
			},
		})
	})
}

func TestWeeklySlotOverlaps(t *testing.T) {
	teacherID := uuid.New()
	build := func(weekday int, start, end string) *schedule.WeeklySlot {
		slot, err := builder.NewSlotBuilder().
			WithTeacherID(teacherID).
			WithWeekday(weekday).
			WithWindow(start, end).
			BuildDomain()
		require.NoError(t, err)
		return slot
	}

	t.Run("same weekday intersecting windows", func(t *testing.T) {
		assert.True(t, build(1, "09:00", "12:00").Overlaps(build(1, "11:00", "13:00")))
	})

	t.Run("same weekday adjacent windows", func(t *testing.T) {
		assert.False(t, build(1, "09:00", "12:00").Overlaps(build(1, "12:00", "15:00")))
	})

	t.Run("different weekday never overlaps", func(t *testing.T) {
		assert.False(t, build(1, "09:00", "12:00").Overlaps(build(2, "09:00", "12:00")))
	})
}

func TestNewSlotSet(t *testing.T) {
	teacherID := uuid.New()
	build := func(b *builder.SlotBuilder) *schedule.WeeklySlot {
		slot, err := b.WithTeacherID(teacherID).BuildDomain()
		require.NoError(t, err)
		return slot
	}

	t.Run("valid batch", func(t *testing.T) {
		set, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("09:00", "12:00")),
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("13:00", "18:00")),
			build(builder.NewSlotBuilder().WithWeekday(3).WithWindow("09:00", "12:00")),
		})
		require.NoError(t, err)
		assert.Len(t, set.Slots(), 3)
		assert.Equal(t, teacherID, set.TeacherID())
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := schedule.NewSlotSet(teacherID, nil)
		assert.ErrorIs(t, err, schedule.ErrEmptySlotBatch)
	})

	t.Run("overlapping active slots rejected", func(t *testing.T) {
		_, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("09:00", "12:00")),
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("11:00", "14:00")),
		})
		assert.ErrorIs(t, err, schedule.ErrSlotOverlap)
	})

	t.Run("overlap with inactive slot tolerated", func(t *testing.T) {
		set, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("09:00", "12:00")),
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("11:00", "14:00").AsInactive()),
		})
		require.NoError(t, err)
		assert.Len(t, set.Slots(), 2)
	})

	t.Run("adjacent slots allowed", func(t *testing.T) {
		_, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("09:00", "12:00")),
			build(builder.NewSlotBuilder().WithWeekday(1).WithWindow("12:00", "15:00")),
		})
		assert.NoError(t, err)
	})
}

func TestSlotSetCovers(t *testing.T) {
	teacherID := uuid.New()

	slot, err := builder.NewSlotBuilder().
		WithTeacherID(teacherID).
		WithWeekday(1).
		WithWindow("09:00", "12:00").
		BuildDomain()
	require.NoError(t, err)

	set, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{slot})
	require.NoError(t, err)

	// 2025-06-02 is a Monday.
	monday := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		start, end time.Time
		covered    bool
	}{
		{name: "inside the window", start: monday(10, 0), end: monday(11, 0), covered: true},
		{name: "exact window", start: monday(9, 0), end: monday(12, 0), covered: true},
		{name: "ends at window end", start: monday(11, 0), end: monday(12, 0), covered: true},
		{name: "starts before window", start: monday(8, 30), end: monday(9, 30), covered: false},
		{name: "runs past window end", start: monday(11, 30), end: monday(12, 30), covered: false},
		{name: "wrong weekday", start: monday(10, 0).AddDate(0, 0, 1), end: monday(11, 0).AddDate(0, 0, 1), covered: false},
		{name: "inverted interval", start: monday(11, 0), end: monday(10, 0), covered: false},
		{name: "crosses midnight", start: monday(23, 0), end: monday(23, 0).Add(2 * time.Hour), covered: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.covered, set.Covers(tc.start, tc.end, time.UTC))
		})
	}

	t.Run("inactive slot never covers", func(t *testing.T) {
		inactive, err := builder.NewSlotBuilder().
			WithTeacherID(teacherID).
			WithWeekday(1).
			WithWindow("09:00", "12:00").
			AsInactive().
			BuildDomain()
		require.NoError(t, err)

		active, err := builder.NewSlotBuilder().
			WithTeacherID(teacherID).
			WithWeekday(3).
			WithWindow("09:00", "12:00").
			BuildDomain()
		require.NoError(t, err)

		set, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{inactive, active})
		require.NoError(t, err)
		assert.False(t, set.Covers(monday(10, 0), monday(11, 0), time.UTC))
	})

	t.Run("timezone changes the projected weekday", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		// Monday 01:00-02:00 in Tokyo is still Sunday in UTC.
		start := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
		assert.False(t, set.Covers(start, start.Add(time.Hour), time.UTC))

		tokyoSlot, err := builder.NewSlotBuilder().
			WithTeacherID(teacherID).
			WithWeekday(1).
			WithWindow("01:00", "03:00").
			BuildDomain()
		require.NoError(t, err)
		tokyoSet, err := schedule.NewSlotSet(teacherID, []*schedule.WeeklySlot{tokyoSlot})
		require.NoError(t, err)
		assert.True(t, tokyoSet.Covers(start, start.Add(time.Hour), tokyo))
	})
}
