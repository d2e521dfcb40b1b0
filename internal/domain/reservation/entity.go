package reservation

import (
	"errors"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrReserveTimeInPast = errors.New("reserve time is in the past")
	ErrLeadTimeNotMet    = errors.New("lead time requirement not met")
	ErrAlreadyCancelled  = errors.New("reservation is already cancelled")
	ErrAlreadyCompleted  = errors.New("reservation is already completed")
	ErrInvalidDuration   = errors.New("course duration must be positive")
	ErrNotParty          = errors.New("actor is not a party to this reservation")
)

// CourseSpec is the slice of the course catalog the booking rules need.
type CourseSpec struct {
	ID          uuid.UUID
	TeacherID   uuid.UUID
	DurationMin int
}

type Services struct {
	Clock       clock.Clock
	MinLeadTime time.Duration
}

// Reservation is one booked course instance. Its interval is
// [startsAt, endsAt) where endsAt derives from the course duration.
type Reservation struct {
	id            uuid.UUID
	courseID      uuid.UUID
	teacherID     uuid.UUID
	studentID     uuid.UUID
	startsAt      time.Time
	endsAt        time.Time
	teacherStatus Status
	studentStatus Status
	ledgerEntryID uuid.UUID
	cancelReason  *string
	note          *string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	services *Services,
	course CourseSpec,
	studentID uuid.UUID,
	startsAt time.Time,
) (*Reservation, error) {
	if course.DurationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	now := services.Clock.Now()
	if startsAt.Before(now) {
		return nil, ErrReserveTimeInPast
	}
	if startsAt.Before(now.Add(services.MinLeadTime)) {
		return nil, ErrLeadTimeNotMet
	}

	return &Reservation{
		id:            uuid.New(),
		courseID:      course.ID,
		teacherID:     course.TeacherID,
		studentID:     studentID,
		startsAt:      startsAt,
		endsAt:        startsAt.Add(time.Duration(course.DurationMin) * time.Minute),
		teacherStatus: StatusReserved,
		studentStatus: StatusReserved,
	}, nil
}

func ReconstructReservation(
	id, courseID, teacherID, studentID uuid.UUID,
	startsAt, endsAt time.Time,
	teacherStatus, studentStatus Status,
	ledgerEntryID uuid.UUID,
	cancelReason, note *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		courseID:      courseID,
		teacherID:     teacherID,
		studentID:     studentID,
		startsAt:      startsAt,
		endsAt:        endsAt,
		teacherStatus: teacherStatus,
		studentStatus: studentStatus,
		ledgerEntryID: ledgerEntryID,
		cancelReason:  cancelReason,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// AttachLedgerEntry records which ledger entry the booking consumed so that
// cancellation releases the exact same entry.
func (r *Reservation) AttachLedgerEntry(entryID uuid.UUID) {
	r.ledgerEntryID = entryID
}

// MarkCompleted transitions the acting side to completed. Only a side
// currently in reserved may complete; a cancelled booking is frozen.
func (r *Reservation) MarkCompleted(role user.Role, note *string) error {
	if r.State() == StateCancelled {
		return ErrAlreadyCancelled
	}

	side := r.sideStatus(role)
	if *side != StatusReserved {
		return ErrAlreadyCompleted
	}

	*side = StatusCompleted
	if note != nil {
		r.note = note
	}
	return nil
}

// Cancel voids the booking for both parties. Once either side has cancelled,
// or both have completed, no further transitions are permitted.
func (r *Reservation) Cancel(reason *string) error {
	switch r.State() {
	case StateCancelled:
		return ErrAlreadyCancelled
	case StateFullyCompleted:
		return ErrAlreadyCompleted
	}

	r.teacherStatus = StatusCancelled
	r.studentStatus = StatusCancelled
	r.cancelReason = reason
	return nil
}

// IsParty reports whether the actor is the assigned teacher or student.
func (r *Reservation) IsParty(actorID uuid.UUID, role user.Role) bool {
	switch role {
	case user.RoleTeacher:
		return r.teacherID == actorID
	case user.RoleStudent:
		return r.studentID == actorID
	default:
		return false
	}
}

func (r *Reservation) State() State {
	return CompositeState(r.teacherStatus, r.studentStatus)
}

func (r *Reservation) IsFullyCompleted() bool {
	return r.State() == StateFullyCompleted
}

func (r *Reservation) sideStatus(role user.Role) *Status {
	if role == user.RoleTeacher {
		return &r.teacherStatus
	}
	return &r.studentStatus
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) CourseID() uuid.UUID      { return r.courseID }
func (r *Reservation) TeacherID() uuid.UUID     { return r.teacherID }
func (r *Reservation) StudentID() uuid.UUID     { return r.studentID }
func (r *Reservation) StartsAt() time.Time      { return r.startsAt }
func (r *Reservation) EndsAt() time.Time        { return r.endsAt }
func (r *Reservation) TeacherStatus() Status    { return r.teacherStatus }
func (r *Reservation) StudentStatus() Status    { return r.studentStatus }
func (r *Reservation) LedgerEntryID() uuid.UUID { return r.ledgerEntryID }
func (r *Reservation) CancelReason() *string    { return r.cancelReason }
func (r *Reservation) Note() *string            { return r.note }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }

// Overlapping applies the half-open rule to two absolute intervals.
func Overlapping(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
