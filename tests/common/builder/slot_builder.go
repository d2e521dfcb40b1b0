//go:build unit || e2e

package builder

import (
	"time"

	"lessonbook/internal/domain/schedule"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	TeacherID uuid.UUID
	Weekday   int
	StartTime string
	EndTime   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Now()
	return &SlotBuilder{
		TeacherID: uuid.New(),
		Weekday:   1, // Monday
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() (*schedule.WeeklySlot, error) {
	return schedule.NewWeeklySlot(b.TeacherID, b.Weekday, b.StartTime, b.EndTime, b.IsActive)
}

func (b *SlotBuilder) BuildInput() commands.SlotInput {
	return commands.SlotInput{
		Weekday:   b.Weekday,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		IsActive:  b.IsActive,
	}
}

func (b *SlotBuilder) BuildRequestDTO() reqdto.ScheduleSlotRequest {
	weekday := b.Weekday
	active := b.IsActive
	return reqdto.ScheduleSlotRequest{
		Weekday:   &weekday,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		IsActive:  &active,
	}
}

func (b *SlotBuilder) BuildView() *queries.ScheduleSlotView {
	return &queries.ScheduleSlotView{
		ID:        uuid.New(),
		TeacherID: b.TeacherID,
		Weekday:   b.Weekday,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *SlotBuilder) BuildSnapshot() (*shared.SlotSnapshot, error) {
	slot, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	return &shared.SlotSnapshot{
		ID:        slot.ID(),
		TeacherID: slot.TeacherID(),
		Weekday:   slot.Weekday(),
		Window:    slot.Window(),
		IsActive:  slot.IsActive(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}, nil
}

// Fluent builder methods
func (b *SlotBuilder) WithTeacherID(teacherID uuid.UUID) *SlotBuilder {
	b.TeacherID = teacherID
	return b
}

func (b *SlotBuilder) WithWeekday(weekday int) *SlotBuilder {
	b.Weekday = weekday
	return b
}

func (b *SlotBuilder) WithWindow(startTime, endTime string) *SlotBuilder {
	b.StartTime = startTime
	b.EndTime = endTime
	return b
}

func (b *SlotBuilder) WithStartTime(startTime string) *SlotBuilder {
	b.StartTime = startTime
	return b
}

func (b *SlotBuilder) WithEndTime(endTime string) *SlotBuilder {
	b.EndTime = endTime
	return b
}

func (b *SlotBuilder) AsInactive() *SlotBuilder {
	b.IsActive = false
	return b
}
