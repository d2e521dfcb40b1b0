package response

import (
	"time"

	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RemainingLessonsResponse struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type CreateReservationResponse struct {
	ID               uuid.UUID                `json:"id"`
	StartsAt         time.Time                `json:"starts_at"`
	EndsAt           time.Time                `json:"ends_at"`
	RemainingLessons RemainingLessonsResponse `json:"remaining_lessons"`
}

type ReservationResponse struct {
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

type ReservationListResponse struct {
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

type UpdateReservationStatusResponse struct {
	ID               uuid.UUID `json:"id"`
	State            string    `json:"state"`
	IsFullyCompleted bool      `json:"is_fully_completed"`
}

type CancelReservationResponse struct {
	ID              uuid.UUID `json:"id"`
	RefundedLessons int       `json:"refunded_lessons"`
}

func FromCreateReservationResult(result *commands.CreateReservationResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:       result.ReservationID,
		StartsAt: result.StartsAt,
		EndsAt:   result.EndsAt,
		RemainingLessons: RemainingLessonsResponse{
			Total:     result.Balance.Total,
			Used:      result.Balance.Used,
			Remaining: result.Balance.Remaining,
		},
	}
}

func FromLedgerBalanceView(v *queries.LedgerBalanceView) *RemainingLessonsResponse {
	return &RemainingLessonsResponse{
		Total:     v.Total,
		Used:      v.Used,
		Remaining: v.Remaining,
	}
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		CourseID:      v.CourseID,
		CourseName:    v.CourseName,
		TeacherID:     v.TeacherID,
		TeacherEmail:  v.TeacherEmail,
		StudentID:     v.StudentID,
		StudentEmail:  v.StudentEmail,
		StartsAt:      v.StartsAt,
		EndsAt:        v.EndsAt,
		TeacherStatus: v.TeacherStatus,
		StudentStatus: v.StudentStatus,
		State:         v.State,
		CancelReason:  v.CancelReason,
		Note:          v.Note,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         v.ID,
		CourseID:   v.CourseID,
		CourseName: v.CourseName,
		TeacherID:  v.TeacherID,
		StudentID:  v.StudentID,
		StartsAt:   v.StartsAt,
		EndsAt:     v.EndsAt,
		State:      v.State,
		CreatedAt:  v.CreatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem) []*ReservationListResponse {
	result := make([]*ReservationListResponse, len(items))
	for i, item := range items {
		result[i] = FromReservationListItem(item)
	}
	return result
}
