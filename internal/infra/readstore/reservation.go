package readstore

import (
	"context"
	"time"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/domain/user"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct{}

func NewReservationReadStore() *ReservationReadStore {
	return &ReservationReadStore{}
}

const listItemColumns = `r.id, r.course_id, c.name, r.teacher_id, r.student_id,
	r.starts_at, r.ends_at, r.teacher_status, r.student_status, r.created_at`

func (r *ReservationReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.ReservationView, error) {
	row := dbtx.QueryRow(ctx,
		`SELECT r.id, r.course_id, c.name, r.teacher_id, t.email, r.student_id, s.email,
		        r.starts_at, r.ends_at, r.teacher_status, r.student_status,
		        r.cancel_reason, r.note, r.created_at, r.updated_at
		 FROM reservations r
		 JOIN courses c ON c.id = r.course_id
		 JOIN users t ON t.id = r.teacher_id
		 JOIN users s ON s.id = r.student_id
		 WHERE r.id = $1 AND r.deleted_at IS NULL`,
		pgconv.UUIDToPgtype(id),
	)

	var (
		resID         pgtype.UUID
		courseID      pgtype.UUID
		courseName    string
		teacherID     pgtype.UUID
		teacherEmail  string
		studentID     pgtype.UUID
		studentEmail  string
		startsAt      pgtype.Timestamptz
		endsAt        pgtype.Timestamptz
		teacherStatus string
		studentStatus string
		cancelReason  pgtype.Text
		note          pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&resID, &courseID, &courseName, &teacherID, &teacherEmail, &studentID, &studentEmail,
		&startsAt, &endsAt, &teacherStatus, &studentStatus,
		&cancelReason, &note, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	state := reservation.CompositeState(reservation.Status(teacherStatus), reservation.Status(studentStatus))

	return &queries.ReservationView{
		ID:            uuid.UUID(resID.Bytes),
		CourseID:      uuid.UUID(courseID.Bytes),
		CourseName:    courseName,
		TeacherID:     uuid.UUID(teacherID.Bytes),
		TeacherEmail:  teacherEmail,
		StudentID:     uuid.UUID(studentID.Bytes),
		StudentEmail:  studentEmail,
		StartsAt:      pgconv.TimeFromPgtype(startsAt),
		EndsAt:        pgconv.TimeFromPgtype(endsAt),
		TeacherStatus: teacherStatus,
		StudentStatus: studentStatus,
		State:         string(state),
		CancelReason:  pgconv.StringPtrFromPgtype(cancelReason),
		Note:          pgconv.StringPtrFromPgtype(note),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (r *ReservationReadStore) FindByTeacher(ctx context.Context, dbtx db.DBTX, teacherID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := dbtx.Query(ctx,
		`SELECT `+listItemColumns+`
		 FROM reservations r
		 JOIN courses c ON c.id = r.course_id
		 WHERE r.teacher_id = $1 AND r.deleted_at IS NULL
		 ORDER BY r.starts_at DESC`,
		pgconv.UUIDToPgtype(teacherID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by teacher", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByStudent(ctx context.Context, dbtx db.DBTX, studentID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := dbtx.Query(ctx,
		`SELECT `+listItemColumns+`
		 FROM reservations r
		 JOIN courses c ON c.id = r.course_id
		 WHERE r.student_id = $1 AND r.deleted_at IS NULL
		 ORDER BY r.starts_at DESC`,
		pgconv.UUIDToPgtype(studentID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by student", err)
	}
	return collectListItems(rows)
}

// FindUpcomingPendingByTeacher returns future bookings still reserved on both
// sides, the only ones that matter for schedule conflict previews.
func (r *ReservationReadStore) FindUpcomingPendingByTeacher(ctx context.Context, dbtx db.DBTX, teacherID uuid.UUID, from time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := dbtx.Query(ctx,
		`SELECT `+listItemColumns+`
		 FROM reservations r
		 JOIN courses c ON c.id = r.course_id
		 WHERE r.teacher_id = $1
		   AND r.deleted_at IS NULL
		   AND r.teacher_status = 'reserved'
		   AND r.student_status = 'reserved'
		   AND r.ends_at > $2
		 ORDER BY r.starts_at`,
		pgconv.UUIDToPgtype(teacherID),
		pgconv.TimeToPgtype(from),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find upcoming pending reservations", err)
	}
	return collectListItems(rows)
}

// FindActiveByActorBetween feeds the calendar: the actor's bookings in
// [from, to) that are not cancelled.
func (r *ReservationReadStore) FindActiveByActorBetween(ctx context.Context, dbtx db.DBTX, actorID uuid.UUID, role user.Role, from, to time.Time) ([]*queries.ReservationListItem, error) {
	actorColumn := "r.student_id"
	if role == user.RoleTeacher {
		actorColumn = "r.teacher_id"
	}

	rows, err := dbtx.Query(ctx,
		`SELECT `+listItemColumns+`
		 FROM reservations r
		 JOIN courses c ON c.id = r.course_id
		 WHERE `+actorColumn+` = $1
		   AND r.deleted_at IS NULL
		   AND r.teacher_status <> 'cancelled'
		   AND r.student_status <> 'cancelled'
		   AND r.starts_at >= $2
		   AND r.starts_at < $3
		 ORDER BY r.starts_at`,
		pgconv.UUIDToPgtype(actorID),
		pgconv.TimeToPgtype(from),
		pgconv.TimeToPgtype(to),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations for calendar", err)
	}
	return collectListItems(rows)
}

func collectListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			id            pgtype.UUID
			courseID      pgtype.UUID
			courseName    string
			teacherID     pgtype.UUID
			studentID     pgtype.UUID
			startsAt      pgtype.Timestamptz
			endsAt        pgtype.Timestamptz
			teacherStatus string
			studentStatus string
			createdAt     pgtype.Timestamptz
		)
		err := rows.Scan(
			&id, &courseID, &courseName, &teacherID, &studentID,
			&startsAt, &endsAt, &teacherStatus, &studentStatus, &createdAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list row", err)
		}

		state := reservation.CompositeState(reservation.Status(teacherStatus), reservation.Status(studentStatus))

		items = append(items, &queries.ReservationListItem{
			ID:         uuid.UUID(id.Bytes),
			CourseID:   uuid.UUID(courseID.Bytes),
			CourseName: courseName,
			TeacherID:  uuid.UUID(teacherID.Bytes),
			StudentID:  uuid.UUID(studentID.Bytes),
			StartsAt:   pgconv.TimeFromPgtype(startsAt),
			EndsAt:     pgconv.TimeFromPgtype(endsAt),
			State:      string(state),
			CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation list rows", err)
	}

	return items, nil
}
