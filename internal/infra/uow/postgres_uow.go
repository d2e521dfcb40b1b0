package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"lessonbook/internal/domain/reservation"
	"lessonbook/internal/domain/schedule"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/infra/writerepo"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	slotRepo         shared.SlotRepository
	reservationRepo  shared.ReservationRepository
	ledgerRepo       shared.LedgerRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = writerepo.NewSlotRepository()
	}
	return t.slotRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = writerepo.NewReservationRepository()
	}
	return t.reservationRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = writerepo.NewLedgerRepository()
	}
	return t.ledgerRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = writerepo.NewNotificationRepository()
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

// LockTeacher takes a transaction-scoped advisory lock keyed by teacher id.
// Booking and slot replacement for one teacher serialize here; other
// teachers are unaffected.
func (t *pgTx) LockTeacher(ctx context.Context, teacherID uuid.UUID) error {
	_, err := t.dbtx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		teacherID.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to acquire teacher lock", err)
	}
	return nil
}

type commandReads struct {
	dbtx db.DBTX
}

const reservationColumns = `id, course_id, teacher_id, student_id, starts_at, ends_at,
	teacher_status, student_status, ledger_entry_id, cancel_reason, note,
	created_at, updated_at`

func (r *commandReads) CourseByID(ctx context.Context, id uuid.UUID) (*shared.CourseSnapshot, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT id, teacher_id, name, duration_min, is_active
		 FROM courses
		 WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	var (
		courseID    pgtype.UUID
		teacherID   pgtype.UUID
		name        string
		durationMin int32
		isActive    bool
	)
	if err := row.Scan(&courseID, &teacherID, &name, &durationMin, &isActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("course not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find course", err)
	}

	return &shared.CourseSnapshot{
		ID:          uuid.UUID(courseID.Bytes),
		TeacherID:   uuid.UUID(teacherID.Bytes),
		Name:        name,
		DurationMin: int(durationMin),
		IsActive:    isActive,
	}, nil
}

func (r *commandReads) ActiveSlotsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*shared.SlotSnapshot, error) {
	rows, err := r.dbtx.Query(ctx,
		`SELECT id, teacher_id, weekday, start_time, end_time, is_active, created_at, updated_at
		 FROM availability_slots
		 WHERE teacher_id = $1 AND is_active
		 ORDER BY weekday, start_time`,
		pgconv.UUIDToPgtype(teacherID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability slots", err)
	}
	defer rows.Close()

	var snapshots []*shared.SlotSnapshot
	for rows.Next() {
		var (
			id        pgtype.UUID
			owner     pgtype.UUID
			weekday   int16
			startTime pgtype.Time
			endTime   pgtype.Time
			isActive  bool
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &owner, &weekday, &startTime, &endTime, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability slot", err)
		}

		snap, err := buildSlotSnapshot(id, owner, weekday, startTime, endTime, isActive, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability slots", err)
	}

	return snapshots, nil
}

func buildSlotSnapshot(
	id, teacherID pgtype.UUID,
	weekday int16,
	startTime, endTime pgtype.Time,
	isActive bool,
	createdAt, updatedAt pgtype.Timestamptz,
) (*shared.SlotSnapshot, error) {
	day, err := schedule.NewWeekday(int(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("stored weekday out of range", err, infra.KindInvariantViolated)
	}

	start, err := schedule.TimeOfDayFromMinutes(pgconv.MinutesFromPgTime(startTime))
	if err != nil {
		return nil, infra.WrapRepoErr("stored start_time out of range", err, infra.KindInvariantViolated)
	}
	end, err := schedule.TimeOfDayFromMinutes(pgconv.MinutesFromPgTime(endTime))
	if err != nil {
		return nil, infra.WrapRepoErr("stored end_time out of range", err, infra.KindInvariantViolated)
	}
	window, err := schedule.NewWindow(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("stored slot window is inverted", err, infra.KindInvariantViolated)
	}

	return &shared.SlotSnapshot{
		ID:        uuid.UUID(id.Bytes),
		TeacherID: uuid.UUID(teacherID.Bytes),
		Weekday:   day,
		Window:    window,
		IsActive:  isActive,
		CreatedAt: pgconv.TimeFromPgtype(createdAt),
		UpdatedAt: pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (r *commandReads) PendingReservationsOverlapping(ctx context.Context, teacherID uuid.UUID, start, end time.Time) ([]*shared.ReservationSnapshot, error) {
	rows, err := r.dbtx.Query(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE teacher_id = $1
		   AND deleted_at IS NULL
		   AND teacher_status = 'reserved'
		   AND student_status = 'reserved'
		   AND starts_at < $3
		   AND ends_at > $2`,
		pgconv.UUIDToPgtype(teacherID),
		pgconv.TimeToPgtype(start),
		pgconv.TimeToPgtype(end),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var snapshots []*shared.ReservationSnapshot
	for rows.Next() {
		snap, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overlapping reservations", err)
	}

	return snapshots, nil
}

func (r *commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE id = $1 AND deleted_at IS NULL
		 FOR UPDATE`,
		pgconv.UUIDToPgtype(id),
	)

	snap, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return snap, nil
}

func (r *commandReads) LedgerBalance(ctx context.Context, studentID, courseID uuid.UUID) (*shared.LedgerBalance, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_total), 0), COALESCE(SUM(quantity_used), 0)
		 FROM lesson_ledger
		 WHERE student_id = $1 AND course_id = $2`,
		pgconv.UUIDToPgtype(studentID),
		pgconv.UUIDToPgtype(courseID),
	)

	var total, used int64
	if err := row.Scan(&total, &used); err != nil {
		return nil, infra.WrapRepoErr("failed to sum lesson ledger", err)
	}

	return &shared.LedgerBalance{
		Total:     int(total),
		Used:      int(used),
		Remaining: int(total - used),
	}, nil
}

func scanReservation(row pgx.Row) (*shared.ReservationSnapshot, error) {
	var (
		id            pgtype.UUID
		courseID      pgtype.UUID
		teacherID     pgtype.UUID
		studentID     pgtype.UUID
		startsAt      pgtype.Timestamptz
		endsAt        pgtype.Timestamptz
		teacherStatus string
		studentStatus string
		ledgerEntryID pgtype.UUID
		cancelReason  pgtype.Text
		note          pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &courseID, &teacherID, &studentID, &startsAt, &endsAt,
		&teacherStatus, &studentStatus, &ledgerEntryID, &cancelReason, &note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	return &shared.ReservationSnapshot{
		ID:            uuid.UUID(id.Bytes),
		CourseID:      uuid.UUID(courseID.Bytes),
		TeacherID:     uuid.UUID(teacherID.Bytes),
		StudentID:     uuid.UUID(studentID.Bytes),
		StartsAt:      pgconv.TimeFromPgtype(startsAt),
		EndsAt:        pgconv.TimeFromPgtype(endsAt),
		TeacherStatus: reservation.Status(teacherStatus),
		StudentStatus: reservation.Status(studentStatus),
		LedgerEntryID: uuid.UUID(ledgerEntryID.Bytes),
		CancelReason:  pgconv.StringPtrFromPgtype(cancelReason),
		Note:          pgconv.StringPtrFromPgtype(note),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
