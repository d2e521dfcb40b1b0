package queries

import (
	"context"
	"time"

	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/clock"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	GetSlots(ctx context.Context, teacherID uuid.UUID) ([]*ScheduleSlotView, error)
	CheckConflicts(ctx context.Context, teacherID uuid.UUID, weekday int, startTime, endTime string) (*ConflictCheckView, error)
}

type ScheduleViewRepo interface {
	FindSlotsByTeacher(ctx context.Context, db db.DBTX, teacherID uuid.UUID) ([]*ScheduleSlotView, error)
}

type scheduleQueriesImpl struct {
	uow          shared.UnitOfWork
	slots        ScheduleViewRepo
	reservations ReservationViewRepo
	clock        clock.Clock
	loc          *time.Location
}

func NewScheduleQueries(
	uow shared.UnitOfWork,
	slots ScheduleViewRepo,
	reservations ReservationViewRepo,
	clk clock.Clock,
	loc *time.Location,
) ScheduleQueries {
	return &scheduleQueriesImpl{
		uow:          uow,
		slots:        slots,
		reservations: reservations,
		clock:        clk,
		loc:          loc,
	}
}

func (q *scheduleQueriesImpl) GetSlots(ctx context.Context, teacherID uuid.UUID) ([]*ScheduleSlotView, error) {
	var views []*ScheduleSlotView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		views, err = q.slots.FindSlotsByTeacher(ctx, dbtx, teacherID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// CheckConflicts previews what a window would collide with before the teacher
// commits a schedule change: published active slots on the same weekday plus
// pending future bookings falling inside the window.
func (q *scheduleQueriesImpl) CheckConflicts(ctx context.Context, teacherID uuid.UUID, weekday int, startTime, endTime string) (*ConflictCheckView, error) {
	day, err := schedule.NewWeekday(weekday)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	start, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	end, err := schedule.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	window, err := schedule.NewWindow(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var (
		slotViews []*ScheduleSlotView
		resViews  []*ReservationListItem
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		if slotViews, ierr = q.slots.FindSlotsByTeacher(ctx, dbtx, teacherID); ierr != nil {
			return ierr
		}
		resViews, ierr = q.reservations.FindUpcomingPendingByTeacher(ctx, dbtx, teacherID, q.clock.Now())
		return ierr
	})
	if err != nil {
		return nil, err
	}

	view := &ConflictCheckView{
		Slots:        []*ScheduleSlotView{},
		Reservations: []*ReservationListItem{},
	}

	for _, sv := range slotViews {
		if !sv.IsActive || sv.Weekday != day.Int() {
			continue
		}
		sw, werr := slotWindow(sv)
		if werr != nil {
			return nil, werr
		}
		if sw.Overlaps(window) {
			view.Slots = append(view.Slots, sv)
		}
	}

	for _, rv := range resViews {
		if schedule.WeekdayOf(rv.StartsAt, q.loc) != day {
			continue
		}
		rw, werr := schedule.NewWindow(
			schedule.TimeOfDayOf(rv.StartsAt, q.loc),
			schedule.TimeOfDayOf(rv.EndsAt, q.loc),
		)
		if werr != nil {
			// Booking crosses midnight in the schedule timezone; the wall-clock
			// window is undefined, so it cannot participate in the check.
			continue
		}
		if rw.Overlaps(window) {
			view.Reservations = append(view.Reservations, rv)
		}
	}

	view.HasConflict = len(view.Slots) > 0 || len(view.Reservations) > 0
	return view, nil
}

func slotWindow(sv *ScheduleSlotView) (schedule.Window, error) {
	start, err := schedule.ParseTimeOfDay(sv.StartTime)
	if err != nil {
		return schedule.Window{}, err
	}
	end, err := schedule.ParseTimeOfDay(sv.EndTime)
	if err != nil {
		return schedule.Window{}, err
	}
	return schedule.NewWindow(start, end)
}
