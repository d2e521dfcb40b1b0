package queries

import (
	"context"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	CalendarViewWeek  = "week"
	CalendarViewMonth = "month"

	dateLayout = "2006-01-02"
)

type CalendarQueries interface {
	// GetCalendar composes the actor's bookings over the period with, for
	// teachers, their own recurring availability expanded onto each date.
	// Cancelled bookings are excluded.
	GetCalendar(ctx context.Context, actorID uuid.UUID, role user.Role, view string, anchor time.Time) (*CalendarView, error)
}

type calendarQueriesImpl struct {
	uow          shared.UnitOfWork
	slots        ScheduleViewRepo
	reservations ReservationViewRepo
	loc          *time.Location
}

func NewCalendarQueries(
	uow shared.UnitOfWork,
	slots ScheduleViewRepo,
	reservations ReservationViewRepo,
	loc *time.Location,
) CalendarQueries {
	return &calendarQueriesImpl{
		uow:          uow,
		slots:        slots,
		reservations: reservations,
		loc:          loc,
	}
}

func (q *calendarQueriesImpl) GetCalendar(ctx context.Context, actorID uuid.UUID, role user.Role, view string, anchor time.Time) (*CalendarView, error) {
	from, to, err := calendarPeriod(view, anchor, q.loc)
	if err != nil {
		return nil, err
	}

	var (
		slotViews []*ScheduleSlotView
		resViews  []*ReservationListItem
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		if resViews, ierr = q.reservations.FindActiveByActorBetween(ctx, dbtx, actorID, role, from, to); ierr != nil {
			return ierr
		}
		if role == user.RoleTeacher {
			slotViews, ierr = q.slots.FindSlotsByTeacher(ctx, dbtx, actorID)
		}
		return ierr
	})
	if err != nil {
		return nil, err
	}

	result := &CalendarView{
		View: view,
		From: from.Format(dateLayout),
		To:   to.AddDate(0, 0, -1).Format(dateLayout),
	}

	for date := from; date.Before(to); date = date.AddDate(0, 0, 1) {
		day := &CalendarDay{
			Date:         date.Format(dateLayout),
			Reservations: []*ReservationListItem{},
		}

		weekday := int(date.Weekday())
		for _, sv := range slotViews {
			if sv.IsActive && sv.Weekday == weekday {
				day.Slots = append(day.Slots, sv)
			}
		}
		for _, rv := range resViews {
			if rv.StartsAt.In(q.loc).Format(dateLayout) == day.Date {
				day.Reservations = append(day.Reservations, rv)
			}
		}

		result.Days = append(result.Days, day)
	}

	return result, nil
}

// calendarPeriod resolves the half-open [from, to) date range: the
// Sunday-starting week or the calendar month containing the anchor.
func calendarPeriod(view string, anchor time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := anchor.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch view {
	case CalendarViewWeek:
		from := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return from, from.AddDate(0, 0, 7), nil
	case CalendarViewMonth:
		from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, errs.Mark(errs.New("view must be week or month"), errs.ErrDomainValidation)
	}
}
