package request

import (
	"strings"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CourseID    uuid.UUID `json:"course_id" binding:"required"`
	TeacherID   uuid.UUID `json:"teacher_id" binding:"required"`
	ReserveDate string    `json:"reserve_date" binding:"required,datetime=2006-01-02"`
	ReserveTime string    `json:"reserve_time" binding:"required"`
}

// StartsAt composes the lesson start instant from the date and wall-clock
// time fields, interpreted in the booking timezone.
func (r CreateReservationRequest) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", r.ReserveDate+" "+r.ReserveTime, loc)
	if err != nil {
		return time.Time{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	return t, nil
}

const (
	StatusTypeTeacherComplete = "teacher-complete"
	StatusTypeStudentComplete = "student-complete"
)

type UpdateReservationStatusRequest struct {
	StatusType string  `json:"status_type" binding:"required,oneof=teacher-complete student-complete"`
	Notes      *string `json:"notes,omitempty"`
}

// CompletingRole maps the status_type to the role whose side is completed.
func (r UpdateReservationStatusRequest) CompletingRole() user.Role {
	if r.StatusType == StatusTypeTeacherComplete {
		return user.RoleTeacher
	}
	return user.RoleStudent
}

func (r UpdateReservationStatusRequest) TrimmedNotes() *string {
	if r.Notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelReservationRequest) TrimmedReason() *string {
	if r.Reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
