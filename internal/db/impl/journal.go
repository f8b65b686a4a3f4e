package impl

import (
	"context"
	"database/sql"
	"time"

	"github.com/sidereusnuntius/hermes/internal/domain"
)

func (d *dbImpl) Settled(ctx context.Context, jobKey string) (map[string]bool, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT recipient FROM deliveries WHERE job_key = ? AND status != ?`, jobKey, domain.DeliveryPending)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	settled := make(map[string]bool)
	for rows.Next() {
		var recipient string
		if err = rows.Scan(&recipient); err != nil {
			return nil, d.HandleError(err)
		}
		settled[recipient] = true
	}
	return settled, d.HandleError(rows.Err())
}

// RecordDelivery upserts the journal entry of a recipient. Only pending entries are updated, so a
// delivery recorded as settled stays so even if the job runs again.
func (d *dbImpl) RecordDelivery(ctx context.Context, delivery domain.Delivery) error {
	if delivery.UpdatedAt.IsZero() {
		delivery.UpdatedAt = time.Now()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO deliveries (job_key, recipient, status, reason, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (job_key, recipient) DO UPDATE SET
			status = excluded.status,
			reason = excluded.reason,
			updated_at = excluded.updated_at
		WHERE deliveries.status = ?`,
		delivery.JobKey, delivery.Recipient, delivery.Status, delivery.Reason, delivery.UpdatedAt.Unix(),
		domain.DeliveryPending)
	return d.HandleError(err)
}

func (d *dbImpl) ListDeliveries(ctx context.Context, jobKey string) ([]domain.Delivery, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT job_key, recipient, status, reason, updated_at FROM deliveries WHERE job_key = ? ORDER BY recipient`,
		jobKey)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	deliveries := []domain.Delivery{}
	for rows.Next() {
		var (
			delivery domain.Delivery
			updated  int64
		)
		if err = rows.Scan(&delivery.JobKey, &delivery.Recipient, &delivery.Status, &delivery.Reason, &updated); err != nil {
			return nil, d.HandleError(err)
		}
		delivery.UpdatedAt = time.Unix(updated, 0).UTC()
		deliveries = append(deliveries, delivery)
	}
	return deliveries, d.HandleError(rows.Err())
}

// BuryJob stores the failed job and settles its pending deliveries as failed, in a single transaction.
func (d *dbImpl) BuryJob(ctx context.Context, job domain.FailedJob) error {
	if job.FailedAt.IsZero() {
		job.FailedAt = time.Now()
	}
	if job.Options == "" {
		job.Options = "{}"
	}

	return d.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO failed_jobs
				(job_key, author_id, object_type, object_id, options, attempts, reason, failed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			job.Key, job.AuthorID, job.ObjectType, job.ObjectID, job.Options, job.Attempts, job.Reason,
			job.FailedAt.Unix())
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE deliveries SET status = ?, updated_at = ? WHERE job_key = ? AND status = ?`,
			domain.DeliveryFailed, job.FailedAt.Unix(), job.Key, domain.DeliveryPending)
		return err
	})
}

func (d *dbImpl) ListFailedJobs(ctx context.Context, limit int) ([]domain.FailedJob, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT job_key, author_id, object_type, object_id, options, attempts, reason, failed_at
		FROM failed_jobs ORDER BY failed_at DESC, job_key LIMIT ?`, limit)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	jobs := []domain.FailedJob{}
	for rows.Next() {
		var (
			job    domain.FailedJob
			failed int64
		)
		err = rows.Scan(&job.Key, &job.AuthorID, &job.ObjectType, &job.ObjectID, &job.Options, &job.Attempts,
			&job.Reason, &failed)
		if err != nil {
			return nil, d.HandleError(err)
		}
		job.FailedAt = time.Unix(failed, 0).UTC()
		jobs = append(jobs, job)
	}
	return jobs, d.HandleError(rows.Err())
}

func (d *dbImpl) Prune(ctx context.Context, deliveries, failed time.Time) (n int64, err error) {
	err = d.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM deliveries WHERE updated_at < ?`, deliveries.Unix())
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		n += affected

		res, err = tx.ExecContext(ctx, `DELETE FROM failed_jobs WHERE failed_at < ?`, failed.Unix())
		if err != nil {
			return err
		}
		affected, _ = res.RowsAffected()
		n += affected
		return nil
	})
	return
}
