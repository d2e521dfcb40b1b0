package queries

import (
	"context"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID is party-only: the assigned teacher and student see the
	// booking, everyone else gets a not-found-shaped forbidden.
	GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*ReservationView, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, role user.Role) ([]*ReservationListItem, error)
	Balance(ctx context.Context, studentID, courseID uuid.UUID) (*LedgerBalanceView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*ReservationView, error)
	FindByTeacher(ctx context.Context, db db.DBTX, teacherID uuid.UUID) ([]*ReservationListItem, error)
	FindByStudent(ctx context.Context, db db.DBTX, studentID uuid.UUID) ([]*ReservationListItem, error)
	FindUpcomingPendingByTeacher(ctx context.Context, db db.DBTX, teacherID uuid.UUID, from time.Time) ([]*ReservationListItem, error)
	FindActiveByActorBetween(ctx context.Context, db db.DBTX, actorID uuid.UUID, role user.Role, from, to time.Time) ([]*ReservationListItem, error)
}

type LedgerViewRepo interface {
	SumBalance(ctx context.Context, db db.DBTX, studentID, courseID uuid.UUID) (*LedgerBalanceView, error)
}

type reservationQueriesImpl struct {
	uow          shared.UnitOfWork
	reservations ReservationViewRepo
	ledger       LedgerViewRepo
}

func NewReservationQueries(uow shared.UnitOfWork, reservations ReservationViewRepo, ledger LedgerViewRepo) ReservationQueries {
	return &reservationQueriesImpl{
		uow:          uow,
		reservations: reservations,
		ledger:       ledger,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		view, ierr = q.reservations.FindByID(ctx, dbtx, id)
		return ierr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}

	if !isParty(view, actorID, role) {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByActor(ctx context.Context, actorID uuid.UUID, role user.Role) ([]*ReservationListItem, error) {
	var items []*ReservationListItem
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		if role == user.RoleTeacher {
			items, ierr = q.reservations.FindByTeacher(ctx, dbtx, actorID)
		} else {
			items, ierr = q.reservations.FindByStudent(ctx, dbtx, actorID)
		}
		return ierr
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (q *reservationQueriesImpl) Balance(ctx context.Context, studentID, courseID uuid.UUID) (*LedgerBalanceView, error) {
	var balance *LedgerBalanceView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var ierr error
		balance, ierr = q.ledger.SumBalance(ctx, dbtx, studentID, courseID)
		return ierr
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func isParty(view *ReservationView, actorID uuid.UUID, role user.Role) bool {
	switch role {
	case user.RoleTeacher:
		return view.TeacherID == actorID
	case user.RoleStudent:
		return view.StudentID == actorID
	default:
		return false
	}
}
