package writerepo

import (
	"context"

	"lessonbook/internal/domain/ledger"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerRepository struct{}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// ConsumeOldest takes one unit from the oldest entry that still has balance,
// FIFO across purchases. The row lock serializes concurrent bookings for the
// same (student, course) pair.
func (r *LedgerRepository) ConsumeOldest(ctx context.Context, tx db.DBTX, studentID, courseID uuid.UUID) (uuid.UUID, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, student_id, course_id, order_ref, quantity_total, quantity_used, created_at
		 FROM lesson_ledger
		 WHERE student_id = $1 AND course_id = $2 AND quantity_used < quantity_total
		 ORDER BY created_at ASC
		 LIMIT 1
		 FOR UPDATE`,
		pgconv.UUIDToPgtype(studentID),
		pgconv.UUIDToPgtype(courseID),
	)

	var (
		id            pgtype.UUID
		student       pgtype.UUID
		course        pgtype.UUID
		orderRef      string
		quantityTotal int32
		quantityUsed  int32
		createdAt     pgtype.Timestamptz
	)
	if err := row.Scan(&id, &student, &course, &orderRef, &quantityTotal, &quantityUsed, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("no ledger entry with remaining balance", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to lock ledger entry", err)
	}

	entry, err := ledger.ReconstructEntry(
		uuid.UUID(id.Bytes), uuid.UUID(student.Bytes), uuid.UUID(course.Bytes),
		orderRef, int(quantityTotal), int(quantityUsed),
		pgconv.TimeFromPgtype(createdAt),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("stored ledger entry violates quantity bounds", err, infra.KindInvariantViolated)
	}
	if err := entry.Consume(); err != nil {
		return uuid.Nil, infra.WrapRepoErr("ledger entry lost its balance under lock", err, infra.KindInvariantViolated)
	}

	// Guard on the quantity we read under lock; a zero-row update means the
	// row changed anyway, which the lock should make impossible.
	tag, err := tx.Exec(ctx,
		`UPDATE lesson_ledger
		 SET quantity_used = $2
		 WHERE id = $1 AND quantity_used = $3`,
		id,
		int32(entry.QuantityUsed()),
		quantityUsed,
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to consume ledger entry", err)
	}
	if tag.RowsAffected() == 0 {
		return uuid.Nil, infra.WrapRepoErr("ledger entry changed under lock", nil, infra.KindInvariantViolated)
	}

	return entry.ID(), nil
}

// Release returns one unit to the exact entry a booking consumed. The guard
// refuses to decrement below zero; zero rows affected is an invariant
// violation to surface, not a no-op.
func (r *LedgerRepository) Release(ctx context.Context, tx db.DBTX, entryID uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE lesson_ledger
		 SET quantity_used = quantity_used - 1
		 WHERE id = $1 AND quantity_used > 0`,
		pgconv.UUIDToPgtype(entryID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release ledger entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("ledger release affected no rows", nil, infra.KindInvariantViolated)
	}

	return nil
}
