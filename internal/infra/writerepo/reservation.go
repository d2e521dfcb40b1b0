package writerepo

import (
	"context"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO reservations
		   (id, course_id, teacher_id, student_id, starts_at, ends_at,
		    teacher_status, student_status, ledger_entry_id, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.CourseID()),
		pgconv.UUIDToPgtype(res.TeacherID()),
		pgconv.UUIDToPgtype(res.StudentID()),
		pgconv.TimeToPgtype(res.StartsAt()),
		pgconv.TimeToPgtype(res.EndsAt()),
		string(res.TeacherStatus()),
		string(res.StudentStatus()),
		pgconv.UUIDToPgtype(res.LedgerEntryID()),
		pgconv.StringPtrToPgtype(res.Note()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return res.ID(), nil
}

// UpdateStatuses persists a transition the domain entity already validated.
// Cancel reason and note travel with the statuses so one UPDATE covers
// completion and cancellation alike.
func (r *ReservationRepository) UpdateStatuses(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx,
		`UPDATE reservations
		 SET teacher_status = $2,
		     student_status = $3,
		     cancel_reason  = $4,
		     note           = $5,
		     updated_at     = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		pgconv.UUIDToPgtype(res.ID()),
		string(res.TeacherStatus()),
		string(res.StudentStatus()),
		pgconv.StringPtrToPgtype(res.CancelReason()),
		pgconv.StringPtrToPgtype(res.Note()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation statuses", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation disappeared during update", nil, infra.KindNotFound)
	}

	return nil
}
