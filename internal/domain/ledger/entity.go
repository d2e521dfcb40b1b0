package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity    = errors.New("quantity_total must be positive")
	ErrUsedOutOfRange     = errors.New("quantity_used must be between 0 and quantity_total")
	ErrNoRemainingBalance = errors.New("no remaining lesson balance")
	ErrReleaseBelowZero   = errors.New("release would drop quantity_used below zero")
)

// Entry tracks purchased-vs-consumed lesson units for one (student, course,
// purchase) triple. Entries are created by the payment collaborator; this
// service only consumes and releases units.
type Entry struct {
	id            uuid.UUID
	studentID     uuid.UUID
	courseID      uuid.UUID
	orderRef      string
	quantityTotal int
	quantityUsed  int
	createdAt     time.Time
}

func ReconstructEntry(
	id, studentID, courseID uuid.UUID,
	orderRef string,
	quantityTotal, quantityUsed int,
	createdAt time.Time,
) (*Entry, error) {
	if quantityTotal <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantityUsed < 0 || quantityUsed > quantityTotal {
		return nil, ErrUsedOutOfRange
	}
	return &Entry{
		id:            id,
		studentID:     studentID,
		courseID:      courseID,
		orderRef:      orderRef,
		quantityTotal: quantityTotal,
		quantityUsed:  quantityUsed,
		createdAt:     createdAt,
	}, nil
}

// Consume takes exactly one unit. Callers must hold a row lock on the
// backing record so concurrent consumers serialize.
func (e *Entry) Consume() error {
	if e.Remaining() <= 0 {
		return ErrNoRemainingBalance
	}
	e.quantityUsed++
	return nil
}

// Release returns exactly one unit. A release that would drop below zero is
// a logic error to surface, never absorb.
func (e *Entry) Release() error {
	if e.quantityUsed <= 0 {
		return ErrReleaseBelowZero
	}
	e.quantityUsed--
	return nil
}

func (e *Entry) Remaining() int {
	return e.quantityTotal - e.quantityUsed
}

func (e *Entry) ID() uuid.UUID        { return e.id }
func (e *Entry) StudentID() uuid.UUID { return e.studentID }
func (e *Entry) CourseID() uuid.UUID  { return e.courseID }
func (e *Entry) OrderRef() string     { return e.orderRef }
func (e *Entry) QuantityTotal() int   { return e.quantityTotal }
func (e *Entry) QuantityUsed() int    { return e.quantityUsed }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
