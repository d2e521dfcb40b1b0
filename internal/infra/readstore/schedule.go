package readstore

import (
	"context"
	"fmt"

	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadStore struct{}

func NewScheduleReadStore() *ScheduleReadStore {
	return &ScheduleReadStore{}
}

func (r *ScheduleReadStore) FindSlotsByTeacher(ctx context.Context, dbtx db.DBTX, teacherID uuid.UUID) ([]*queries.ScheduleSlotView, error) {
	rows, err := dbtx.Query(ctx,
		`SELECT id, teacher_id, weekday, start_time, end_time, is_active, created_at, updated_at
		 FROM availability_slots
		 WHERE teacher_id = $1
		 ORDER BY weekday, start_time`,
		pgconv.UUIDToPgtype(teacherID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slots by teacher", err)
	}
	defer rows.Close()

	var views []*queries.ScheduleSlotView
	for rows.Next() {
		var (
			id        pgtype.UUID
			owner     pgtype.UUID
			weekday   int16
			startTime pgtype.Time
			endTime   pgtype.Time
			isActive  bool
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &owner, &weekday, &startTime, &endTime, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}

		views = append(views, &queries.ScheduleSlotView{
			ID:        uuid.UUID(id.Bytes),
			TeacherID: uuid.UUID(owner.Bytes),
			Weekday:   int(weekday),
			StartTime: minutesToHHMM(pgconv.MinutesFromPgTime(startTime)),
			EndTime:   minutesToHHMM(pgconv.MinutesFromPgTime(endTime)),
			IsActive:  isActive,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
			UpdatedAt: pgconv.TimeFromPgtype(updatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}

	return views, nil
}

func minutesToHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
