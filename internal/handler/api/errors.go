package api

import (
	"errors"
	"net/http"

	"lessonbook/internal/handler/httperr"
	"lessonbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// errMissingIdentity signals a request that passed auth middleware but lost
// its identity in context, which should never happen.
var errMissingIdentity = errors.New("authenticated identity missing from context")

// respondUsecaseError maps usecase sentinel errors onto HTTP statuses.
// Anything unmapped is a 500: unexpected by definition, so no detail leaks.
func respondUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrDomainValidation),
		errors.Is(err, errs.ErrReserveTimeInPast),
		errors.Is(err, errs.ErrLeadTimeNotMet),
		errors.Is(err, errs.ErrCourseNotOwned),
		errors.Is(err, errs.ErrCourseInactive):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)

	case errors.Is(err, errs.ErrOutsideAvailableHours):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Requested time is outside available hours", nil)

	case errors.Is(err, errs.ErrScheduleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Schedule conflict", nil)

	case errors.Is(err, errs.ErrInsufficientLessonBalance):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient lesson balance", nil)

	case errors.Is(err, errs.ErrReservationCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is already cancelled", nil)

	case errors.Is(err, errs.ErrReservationCompleted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is already completed", nil)

	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)

	case errors.Is(err, errs.ErrReservationNotFound),
		errors.Is(err, errs.ErrCourseNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case errors.Is(err, errs.ErrLedgerInvariantViolation):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Lesson ledger inconsistency", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
