package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ScheduleSlotView struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacher_id"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConflictCheckView reports what an intended window would collide with:
// already-published slots and pending future bookings.
type ConflictCheckView struct {
	HasConflict  bool                   `json:"has_conflict"`
	Slots        []*ScheduleSlotView    `json:"slots"`
	Reservations []*ReservationListItem `json:"reservations"`
}

type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"course_id"`
	CourseName    string    `json:"course_name"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	TeacherEmail  string    `json:"teacher_email"`
	StudentID     uuid.UUID `json:"student_id"`
	StudentEmail  string    `json:"student_email"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	TeacherStatus string    `json:"teacher_status"`
	StudentStatus string    `json:"student_status"`
	State         string    `json:"state"`
	CancelReason  *string   `json:"cancel_reason,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	TeacherID  uuid.UUID `json:"teacher_id"`
	StudentID  uuid.UUID `json:"student_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

type LedgerBalanceView struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type CalendarDay struct {
	Date         string                 `json:"date"`
	Slots        []*ScheduleSlotView    `json:"slots,omitempty"`
	Reservations []*ReservationListItem `json:"reservations"`
}

type CalendarView struct {
	View string         `json:"view"`
	From string         `json:"from"`
	To   string         `json:"to"`
	Days []*CalendarDay `json:"days"`
}
