package shared

import (
	"time"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/domain/schedule"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type CourseSnapshot struct {
	ID          uuid.UUID
	TeacherID   uuid.UUID
	Name        string
	DurationMin int
	IsActive    bool
}

type SlotSnapshot struct {
	ID        uuid.UUID
	TeacherID uuid.UUID
	Weekday   schedule.Weekday
	Window    schedule.Window
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReservationSnapshot struct {
	ID            uuid.UUID
	CourseID      uuid.UUID
	TeacherID     uuid.UUID
	StudentID     uuid.UUID
	StartsAt      time.Time
	EndsAt        time.Time
	TeacherStatus reservation.Status
	StudentStatus reservation.Status
	LedgerEntryID uuid.UUID
	CancelReason  *string
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToDomain rehydrates the aggregate for state-machine transitions.
func (s *ReservationSnapshot) ToDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		s.ID, s.CourseID, s.TeacherID, s.StudentID,
		s.StartsAt, s.EndsAt,
		s.TeacherStatus, s.StudentStatus,
		s.LedgerEntryID,
		s.CancelReason, s.Note,
		s.CreatedAt, s.UpdatedAt,
	)
}

type LedgerBalance struct {
	Total     int
	Used      int
	Remaining int
}
