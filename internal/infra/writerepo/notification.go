package writerepo

import (
	"context"
	"time"

	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		 VALUES ($1, $2, $3, $4, 'queued')`,
		kind,
		topic,
		payload,
		pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}
