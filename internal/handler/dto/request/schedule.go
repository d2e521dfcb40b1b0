package request

import (
	"lessonbook/internal/usecase/commands"
)

type ScheduleSlotRequest struct {
	// Pointer so weekday 0 (Sunday) survives required validation.
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type ReplaceScheduleRequest struct {
	Slots []ScheduleSlotRequest `json:"slots" binding:"required,min=1,dive"`
}

func (r ReplaceScheduleRequest) ToInputs() []commands.SlotInput {
	inputs := make([]commands.SlotInput, 0, len(r.Slots))
	for _, s := range r.Slots {
		active := true
		if s.IsActive != nil {
			active = *s.IsActive
		}
		inputs = append(inputs, commands.SlotInput{
			Weekday:   *s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			IsActive:  active,
		})
	}
	return inputs
}
