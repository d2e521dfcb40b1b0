package commands

import (
	"context"
	"errors"

	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotInput struct {
	Weekday   int
	StartTime string
	EndTime   string
	IsActive  bool
}

type ScheduleCommands interface {
	// ReplaceSlots swaps the teacher's whole weekly schedule atomically.
	// A batch containing an overlap is rejected as a unit.
	ReplaceSlots(ctx context.Context, teacherID uuid.UUID, slots []SlotInput) error
}

type scheduleUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleUseCase(uow shared.UnitOfWork) ScheduleCommands {
	return &scheduleUseCaseImpl{uow: uow}
}

func (uc *scheduleUseCaseImpl) ReplaceSlots(ctx context.Context, teacherID uuid.UUID, slots []SlotInput) error {
	domainSlots := make([]*schedule.WeeklySlot, 0, len(slots))
	for _, in := range slots {
		slot, err := schedule.NewWeeklySlot(teacherID, in.Weekday, in.StartTime, in.EndTime, in.IsActive)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		domainSlots = append(domainSlots, slot)
	}

	set, err := schedule.NewSlotSet(teacherID, domainSlots)
	if err != nil {
		if errors.Is(err, schedule.ErrSlotOverlap) {
			return errs.Mark(err, errs.ErrScheduleConflict)
		}
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lerr := tx.LockTeacher(ctx, teacherID); lerr != nil {
			return lerr
		}
		return tx.Slots().ReplaceForTeacher(ctx, tx.DB(), set)
	})
}
