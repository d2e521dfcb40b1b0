//go:build unit || e2e

package builder

import (
	"time"

	"lessonbook/internal/domain/reservation"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/pkg/clock"
	"lessonbook/internal/usecase/queries"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	CourseID     uuid.UUID
	CourseName   string
	TeacherID    uuid.UUID
	TeacherEmail string
	StudentID    uuid.UUID
	StudentEmail string
	DurationMin  int
	StartsAt     time.Time
	Now          time.Time
	MinLeadTime  time.Duration
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	// Fixed clock keeps lead-time arithmetic deterministic.
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) // Monday
	return &ReservationBuilder{
		CourseID:     uuid.New(),
		CourseName:   "Conversation Practice",
		TeacherID:    uuid.New(),
		TeacherEmail: "teacher@example.com",
		StudentID:    uuid.New(),
		StudentEmail: "student@example.com",
		DurationMin:  60,
		StartsAt:     now.AddDate(0, 0, 7).Add(time.Hour), // next Monday 10:00
		Now:          now,
		MinLeadTime:  24 * time.Hour,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	return reservation.NewReservation(
		&reservation.Services{Clock: clock.NewMockClock(b.Now), MinLeadTime: b.MinLeadTime},
		reservation.CourseSpec{ID: b.CourseID, TeacherID: b.TeacherID, DurationMin: b.DurationMin},
		b.StudentID,
		b.StartsAt,
	)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CourseID:    b.CourseID,
		TeacherID:   b.TeacherID,
		ReserveDate: b.StartsAt.UTC().Format("2006-01-02"),
		ReserveTime: b.StartsAt.UTC().Format("15:04"),
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            uuid.New(),
		CourseID:      b.CourseID,
		CourseName:    b.CourseName,
		TeacherID:     b.TeacherID,
		TeacherEmail:  b.TeacherEmail,
		StudentID:     b.StudentID,
		StudentEmail:  b.StudentEmail,
		StartsAt:      b.StartsAt,
		EndsAt:        b.StartsAt.Add(time.Duration(b.DurationMin) * time.Minute),
		TeacherStatus: reservation.StatusReserved.String(),
		StudentStatus: reservation.StatusReserved.String(),
		State:         string(reservation.StatePending),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:         uuid.New(),
		CourseID:   b.CourseID,
		CourseName: b.CourseName,
		TeacherID:  b.TeacherID,
		StudentID:  b.StudentID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.StartsAt.Add(time.Duration(b.DurationMin) * time.Minute),
		State:      string(reservation.StatePending),
		CreatedAt:  b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:            uuid.New(),
		CourseID:      b.CourseID,
		TeacherID:     b.TeacherID,
		StudentID:     b.StudentID,
		StartsAt:      b.StartsAt,
		EndsAt:        b.StartsAt.Add(time.Duration(b.DurationMin) * time.Minute),
		TeacherStatus: reservation.StatusReserved,
		StudentStatus: reservation.StatusReserved,
		LedgerEntryID: uuid.New(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithCourseID(courseID uuid.UUID) *ReservationBuilder {
	b.CourseID = courseID
	return b
}

func (b *ReservationBuilder) WithTeacherID(teacherID uuid.UUID) *ReservationBuilder {
	b.TeacherID = teacherID
	return b
}

func (b *ReservationBuilder) WithStudentID(studentID uuid.UUID) *ReservationBuilder {
	b.StudentID = studentID
	return b
}

func (b *ReservationBuilder) WithDurationMin(durationMin int) *ReservationBuilder {
	b.DurationMin = durationMin
	return b
}

func (b *ReservationBuilder) WithStartsAt(startsAt time.Time) *ReservationBuilder {
	b.StartsAt = startsAt
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

func (b *ReservationBuilder) WithMinLeadTime(d time.Duration) *ReservationBuilder {
	b.MinLeadTime = d
	return b
}
