package shared

import (
	"context"
	"time"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Reservations() ReservationRepository
	Ledger() LedgerRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
	// LockTeacher serializes bookings and slot replacement per teacher for
	// the remainder of the transaction (advisory, transaction-scoped).
	LockTeacher(ctx context.Context, teacherID uuid.UUID) error
}

// CommandReads are the write-side's own reads: snapshots taken inside the
// mutating transaction so validation and mutation cannot straddle a commit
// boundary visible to a racing transaction.
type CommandReads interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*CourseSnapshot, error)
	ActiveSlotsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*SlotSnapshot, error)
	// PendingReservationsOverlapping returns reserved-side bookings for the
	// teacher whose [starts_at, ends_at) intersects the given interval.
	PendingReservationsOverlapping(ctx context.Context, teacherID uuid.UUID, start, end time.Time) ([]*ReservationSnapshot, error)
	// ReservationForUpdate locks the reservation row for the transaction.
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	LedgerBalance(ctx context.Context, studentID, courseID uuid.UUID) (*LedgerBalance, error)
}

type SlotRepository interface {
	// ReplaceForTeacher deletes every prior slot of the teacher and inserts
	// the new set. All-or-nothing within the surrounding transaction.
	ReplaceForTeacher(ctx context.Context, db db.DBTX, set *schedule.SlotSet) error
}

type ReservationRepository interface {
	Create(ctx context.Context, db db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	// UpdateStatuses persists a state-machine transition already validated
	// by the domain entity.
	UpdateStatuses(ctx context.Context, db db.DBTX, res *reservation.Reservation) error
}

type LedgerRepository interface {
	// ConsumeOldest locks the oldest entry with remaining balance for the
	// (student, course) pair, increments quantity_used, and returns its id.
	ConsumeOldest(ctx context.Context, db db.DBTX, studentID, courseID uuid.UUID) (uuid.UUID, error)
	// Release returns one unit to the given entry. Decrementing below zero
	// is reported as an invariant violation, never silently clamped.
	Release(ctx context.Context, db db.DBTX, entryID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, db db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
