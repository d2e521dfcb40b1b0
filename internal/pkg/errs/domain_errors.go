package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Schedule errors
	ErrScheduleConflict      = errors.New("schedule conflict")
	ErrOutsideAvailableHours = errors.New("outside available hours")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReserveTimeInPast    = errors.New("reserve time in past")
	ErrLeadTimeNotMet       = errors.New("lead time not met")
	ErrReservationCancelled = errors.New("reservation already cancelled")
	ErrReservationCompleted = errors.New("reservation already completed")

	// Course errors
	ErrCourseNotFound = errors.New("course not found")
	ErrCourseNotOwned = errors.New("course not owned by teacher")
	ErrCourseInactive = errors.New("course inactive")

	// Ledger errors
	ErrInsufficientLessonBalance = errors.New("insufficient lesson balance")
	ErrLedgerInvariantViolation  = errors.New("lesson ledger invariant violation")

	// Authorization errors
	ErrForbidden = errors.New("actor is not a party to this resource")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
