package response

import (
	"time"

	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScheduleResponse struct {
	Slots []*ScheduleSlotResponse `json:"slots"`
}

type ConflictCheckResponse struct {
	HasConflict  bool                       `json:"has_conflict"`
	Slots        []*ScheduleSlotResponse    `json:"slots"`
	Reservations []*ReservationListResponse `json:"reservations"`
}

func FromScheduleSlotView(v *queries.ScheduleSlotView) *ScheduleSlotResponse {
	return &ScheduleSlotResponse{
		ID:        v.ID,
		Weekday:   v.Weekday,
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromScheduleSlotViews(views []*queries.ScheduleSlotView) *ScheduleResponse {
	slots := make([]*ScheduleSlotResponse, len(views))
	for i, v := range views {
		slots[i] = FromScheduleSlotView(v)
	}
	return &ScheduleResponse{Slots: slots}
}

func FromConflictCheckView(v *queries.ConflictCheckView) *ConflictCheckResponse {
	resp := &ConflictCheckResponse{
		HasConflict:  v.HasConflict,
		Slots:        make([]*ScheduleSlotResponse, len(v.Slots)),
		Reservations: make([]*ReservationListResponse, len(v.Reservations)),
	}
	for i, s := range v.Slots {
		resp.Slots[i] = FromScheduleSlotView(s)
	}
	for i, r := range v.Reservations {
		resp.Reservations[i] = FromReservationListItem(r)
	}
	return resp
}
