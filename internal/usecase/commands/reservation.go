package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/domain/user"
	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/clock"
	"lessonbook/internal/pkg/config"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	notificationKindEmail = "email"

	topicReservationBooked    = "reservation.booked"
	topicReservationCompleted = "reservation.completed"
	topicReservationCancelled = "reservation.cancelled"
)

type CreateReservationInput struct {
	CourseID  uuid.UUID
	TeacherID uuid.UUID
	StartsAt  time.Time
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	StartsAt      time.Time
	EndsAt        time.Time
	Balance       shared.LedgerBalance
}

type CompleteReservationResult struct {
	State            reservation.State
	IsFullyCompleted bool
}

type CancelReservationResult struct {
	RefundedLessons int
}

type ReservationCommands interface {
	Create(ctx context.Context, input CreateReservationInput, studentID uuid.UUID) (*CreateReservationResult, error)
	MarkComplete(ctx context.Context, id, actorID uuid.UUID, role user.Role, note *string) (*CompleteReservationResult, error)
	Cancel(ctx context.Context, id, actorID uuid.UUID, role user.Role, reason *string) (*CancelReservationResult, error)
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	booking config.BookingConfig
}

func NewReservationUseCase(uow shared.UnitOfWork, clk clock.Clock, booking config.BookingConfig) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:     uow,
		clock:   clk,
		booking: booking,
	}
}

// Create books a lesson. Everything after the lock runs against state no
// other booking or schedule change for this teacher can mutate concurrently:
// slot coverage, overlap check, ledger consume and insert commit together or
// not at all.
func (uc *reservationUseCaseImpl) Create(ctx context.Context, input CreateReservationInput, studentID uuid.UUID) (*CreateReservationResult, error) {
	var result *CreateReservationResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockTeacher(ctx, input.TeacherID); err != nil {
			return err
		}

		course, err := tx.Reads().CourseByID(ctx, input.CourseID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrCourseNotFound)
			}
			return err
		}
		if course.TeacherID != input.TeacherID {
			return errs.ErrCourseNotOwned
		}
		if !course.IsActive {
			return errs.ErrCourseInactive
		}

		res, err := reservation.NewReservation(
			&reservation.Services{Clock: uc.clock, MinLeadTime: uc.booking.MinLeadTime},
			reservation.CourseSpec{ID: course.ID, TeacherID: course.TeacherID, DurationMin: course.DurationMin},
			studentID,
			input.StartsAt,
		)
		if err != nil {
			return markReservationDomainErr(err)
		}

		if err := uc.checkSlotCoverage(ctx, tx, input.TeacherID, res); err != nil {
			return err
		}

		overlapping, err := tx.Reads().PendingReservationsOverlapping(ctx, input.TeacherID, res.StartsAt(), res.EndsAt())
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return errs.Mark(errs.New("time slot already booked"), errs.ErrScheduleConflict)
		}

		entryID, err := tx.Ledger().ConsumeOldest(ctx, tx.DB(), studentID, input.CourseID)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return errs.Mark(err, errs.ErrInsufficientLessonBalance)
			case infra.IsKind(err, infra.KindInvariantViolated):
				return errs.Mark(err, errs.ErrLedgerInvariantViolation)
			}
			return err
		}
		res.AttachLedgerEntry(entryID)

		if _, err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			return err
		}

		balance, err := tx.Reads().LedgerBalance(ctx, studentID, input.CourseID)
		if err != nil {
			return err
		}

		uc.enqueueNotification(ctx, tx, topicReservationBooked, res)

		result = &CreateReservationResult{
			ReservationID: res.ID(),
			StartsAt:      res.StartsAt(),
			EndsAt:        res.EndsAt(),
			Balance:       *balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *reservationUseCaseImpl) MarkComplete(ctx context.Context, id, actorID uuid.UUID, role user.Role, note *string) (*CompleteReservationResult, error) {
	var result *CompleteReservationResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := uc.lockAndAuthorize(ctx, tx, id, actorID, role)
		if err != nil {
			return err
		}

		if derr := res.MarkCompleted(role, note); derr != nil {
			return markReservationDomainErr(derr)
		}

		if err := tx.Reservations().UpdateStatuses(ctx, tx.DB(), res); err != nil {
			return err
		}

		if res.IsFullyCompleted() {
			uc.enqueueNotification(ctx, tx, topicReservationCompleted, res)
		}

		result = &CompleteReservationResult{
			State:            res.State(),
			IsFullyCompleted: res.IsFullyCompleted(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel voids the booking for both parties and refunds exactly one unit to
// the ledger entry the booking consumed.
func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, id, actorID uuid.UUID, role user.Role, reason *string) (*CancelReservationResult, error) {
	var result *CancelReservationResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := uc.lockAndAuthorize(ctx, tx, id, actorID, role)
		if err != nil {
			return err
		}

		if derr := res.Cancel(reason); derr != nil {
			return markReservationDomainErr(derr)
		}

		if err := tx.Reservations().UpdateStatuses(ctx, tx.DB(), res); err != nil {
			return err
		}

		if err := tx.Ledger().Release(ctx, tx.DB(), res.LedgerEntryID()); err != nil {
			if infra.IsKind(err, infra.KindInvariantViolated) {
				return errs.Mark(err, errs.ErrLedgerInvariantViolation)
			}
			return err
		}

		uc.enqueueNotification(ctx, tx, topicReservationCancelled, res)

		result = &CancelReservationResult{RefundedLessons: 1}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *reservationUseCaseImpl) lockAndAuthorize(ctx context.Context, tx shared.Tx, id, actorID uuid.UUID, role user.Role) (*reservation.Reservation, error) {
	snap, err := tx.Reads().ReservationForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}

	res := snap.ToDomain()
	if !res.IsParty(actorID, role) {
		return nil, errs.ErrForbidden
	}
	return res, nil
}

func (uc *reservationUseCaseImpl) checkSlotCoverage(ctx context.Context, tx shared.Tx, teacherID uuid.UUID, res *reservation.Reservation) error {
	snapshots, err := tx.Reads().ActiveSlotsByTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return errs.ErrOutsideAvailableHours
	}

	slots := make([]*schedule.WeeklySlot, 0, len(snapshots))
	for _, s := range snapshots {
		slots = append(slots, schedule.ReconstructWeeklySlot(
			s.ID, s.TeacherID, s.Weekday, s.Window, s.IsActive, s.CreatedAt, s.UpdatedAt,
		))
	}

	set, err := schedule.NewSlotSet(teacherID, slots)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !set.Covers(res.StartsAt(), res.EndsAt(), uc.booking.Location()) {
		return errs.ErrOutsideAvailableHours
	}
	return nil
}

// enqueueNotification is best-effort: a failed enqueue is logged and never
// rolls back the booking it describes.
func (uc *reservationUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation) {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID(),
		"course_id":      res.CourseID(),
		"teacher_id":     res.TeacherID(),
		"student_id":     res.StudentID(),
		"starts_at":      res.StartsAt(),
	})
	if err != nil {
		slog.Warn("failed to marshal notification payload", "topic", topic, "error", err.Error())
		return
	}

	if err := tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindEmail, topic, payload, uc.clock.Now()); err != nil {
		slog.Warn("failed to enqueue notification job",
			"topic", topic,
			"reservation_id", res.ID().String(),
			"error", err.Error())
	}
}

func markReservationDomainErr(err error) error {
	switch {
	case errors.Is(err, reservation.ErrReserveTimeInPast):
		return errs.Mark(err, errs.ErrReserveTimeInPast)
	case errors.Is(err, reservation.ErrLeadTimeNotMet):
		return errs.Mark(err, errs.ErrLeadTimeNotMet)
	case errors.Is(err, reservation.ErrAlreadyCancelled):
		return errs.Mark(err, errs.ErrReservationCancelled)
	case errors.Is(err, reservation.ErrAlreadyCompleted):
		return errs.Mark(err, errs.ErrReservationCompleted)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
