package writerepo

import (
	"context"

	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

// ReplaceForTeacher swaps the teacher's entire weekly schedule in one shot.
// Callers hold the per-teacher advisory lock, so the delete/insert pair
// cannot interleave with a booking's coverage check.
func (r *SlotRepository) ReplaceForTeacher(ctx context.Context, tx db.DBTX, set *schedule.SlotSet) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM availability_slots WHERE teacher_id = $1`,
		pgconv.UUIDToPgtype(set.TeacherID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete prior availability slots", err)
	}

	for _, slot := range set.Slots() {
		_, err := tx.Exec(ctx,
			`INSERT INTO availability_slots (id, teacher_id, weekday, start_time, end_time, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			pgconv.UUIDToPgtype(slot.ID()),
			pgconv.UUIDToPgtype(slot.TeacherID()),
			int16(slot.Weekday().Int()),
			pgconv.MinutesToPgTime(slot.Window().Start().Minutes()),
			pgconv.MinutesToPgTime(slot.Window().End().Minutes()),
			slot.IsActive(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert availability slot", err)
		}
	}

	return nil
}
