//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, role, is_active) VALUES ($1, $2, $3, true) ON CONFLICT (email) DO NOTHING",
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestCourse(t *testing.T, db DBLike, teacherID uuid.UUID, name string, durationMin int) uuid.UUID {
	t.Helper()

	courseID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO courses (id, teacher_id, name, duration_min, is_active) VALUES ($1, $2, $3, $4, true)",
		courseID, teacherID, name, durationMin)
	require.NoError(t, err)

	return courseID
}

func DeactivateCourse(t *testing.T, db DBLike, courseID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE courses SET is_active = false WHERE id = $1", courseID)
	require.NoError(t, err)
}

func CreateLedgerEntry(t *testing.T, db DBLike, studentID, courseID uuid.UUID, orderRef string, total, used int) uuid.UUID {
	t.Helper()

	entryID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO lesson_ledger (id, student_id, course_id, order_ref, quantity_total, quantity_used) VALUES ($1, $2, $3, $4, $5, $6)",
		entryID, studentID, courseID, orderRef, total, used)
	require.NoError(t, err)

	return entryID
}

func LedgerQuantityUsed(t *testing.T, db DBLike, entryID uuid.UUID) int {
	t.Helper()

	var used int
	err := db.QueryRow(context.Background(),
		"SELECT quantity_used FROM lesson_ledger WHERE id = $1", entryID).Scan(&used)
	require.NoError(t, err)
	return used
}

func CountSlots(t *testing.T, db DBLike, teacherID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM availability_slots WHERE teacher_id = $1", teacherID).Scan(&count)
	require.NoError(t, err)
	return count
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&count)
	require.NoError(t, err)
	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
