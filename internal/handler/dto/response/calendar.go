package response

import (
	"lessonbook/internal/usecase/queries"
)

type CalendarDayResponse struct {
	Date         string                     `json:"date"`
	Slots        []*ScheduleSlotResponse    `json:"slots,omitempty"`
	Reservations []*ReservationListResponse `json:"reservations"`
}

type CalendarResponse struct {
	View string                 `json:"view"`
	From string                 `json:"from"`
	To   string                 `json:"to"`
	Days []*CalendarDayResponse `json:"days"`
}

func FromCalendarView(v *queries.CalendarView) *CalendarResponse {
	resp := &CalendarResponse{
		View: v.View,
		From: v.From,
		To:   v.To,
		Days: make([]*CalendarDayResponse, len(v.Days)),
	}
	for i, day := range v.Days {
		d := &CalendarDayResponse{
			Date:         day.Date,
			Reservations: FromReservationList(day.Reservations),
		}
		for _, s := range day.Slots {
			d.Slots = append(d.Slots, FromScheduleSlotView(s))
		}
		resp.Days[i] = d
	}
	return resp
}
