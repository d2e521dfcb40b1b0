package readstore

import (
	"context"

	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type LedgerReadStore struct{}

func NewLedgerReadStore() *LedgerReadStore {
	return &LedgerReadStore{}
}

func (r *LedgerReadStore) SumBalance(ctx context.Context, dbtx db.DBTX, studentID, courseID uuid.UUID) (*queries.LedgerBalanceView, error) {
	row := dbtx.QueryRow(ctx,
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

	return &queries.LedgerBalanceView{
		Total:     int(total),
		Used:      int(used),
		Remaining: int(total - used),
	}, nil
}
