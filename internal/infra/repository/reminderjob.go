package repository

import (
	"context"
	"time"

	"viewing-scheduler/internal/infra"
	"viewing-scheduler/internal/pkg/pgconv"
	"viewing-scheduler/internal/reminder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReminderJobRepository is the durable reminder queue on top of the
// reminder_jobs table. Job keys are unique per (viewing, kind), so Upsert
// replaces the previous trigger when a viewing is rescheduled.
type ReminderJobRepository struct {
	pool *pgxpool.Pool
}

func NewReminderJobRepository(pool *pgxpool.Pool) *ReminderJobRepository {
	return &ReminderJobRepository{pool: pool}
}

func (r *ReminderJobRepository) Upsert(ctx context.Context, job reminder.Job) error {
	query := `
		INSERT INTO reminder_jobs (job_key, viewing_id, kind, fire_at, status, attempts)
		VALUES ($1, $2, $3, $4, 'queued', 0)
		ON CONFLICT (job_key) DO UPDATE SET
			fire_at = EXCLUDED.fire_at,
			status = 'queued',
			attempts = 0,
			last_error = NULL,
			updated_at = now()
	`
	_, err := r.pool.Exec(ctx, query,
		job.Key,
		pgconv.UUIDToPgtype(job.ViewingID),
		string(job.Kind),
		pgconv.TimeToPgtype(job.FireAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert reminder job", err)
	}
	return nil
}

func (r *ReminderJobRepository) DeleteByViewing(ctx context.Context, viewingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reminder_jobs WHERE viewing_id = $1`, pgconv.UUIDToPgtype(viewingID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete reminder jobs", err)
	}
	return nil
}

func (r *ReminderJobRepository) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reminder_jobs WHERE job_key = $1`, key)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reminder job", err)
	}
	return nil
}

// Due claims up to limit jobs whose fire time has passed, flipping them to
// processing in the same statement. SKIP LOCKED keeps concurrent workers
// from claiming the same rows. Rows stuck in processing (a worker crashed
// between claim and completion) are reclaimed after five minutes.
func (r *ReminderJobRepository) Due(ctx context.Context, now time.Time, limit int32) ([]reminder.Job, error) {
	query := `
		UPDATE reminder_jobs
		SET status = 'processing', updated_at = now()
		WHERE job_key IN (
			SELECT job_key FROM reminder_jobs
			WHERE (status = 'queued' AND fire_at <= $1)
			   OR (status = 'processing' AND updated_at < $1 - interval '5 minutes')
			ORDER BY fire_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING job_key, viewing_id, kind, fire_at, attempts
	`
	rows, err := r.pool.Query(ctx, query, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due reminder jobs", err)
	}
	defer rows.Close()

	var jobs []reminder.Job
	for rows.Next() {
		var (
			job  reminder.Job
			kind string
		)
		if err := rows.Scan(&job.Key, &job.ViewingID, &kind, &job.FireAt, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reminder job", err)
		}
		job.Kind = reminder.Kind(kind)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reminder jobs", err)
	}
	return jobs, nil
}

func (r *ReminderJobRepository) Retry(ctx context.Context, key string, nextFireAt time.Time, lastError string) error {
	query := `
		UPDATE reminder_jobs
		SET status = 'queued', attempts = attempts + 1, fire_at = $2, last_error = $3, updated_at = now()
		WHERE job_key = $1
	`
	_, err := r.pool.Exec(ctx, query, key, pgconv.TimeToPgtype(nextFireAt), lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to requeue reminder job", err)
	}
	return nil
}

func (r *ReminderJobRepository) Fail(ctx context.Context, key string, lastError string) error {
	query := `
		UPDATE reminder_jobs
		SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = now()
		WHERE job_key = $1
	`
	_, err := r.pool.Exec(ctx, query, key, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to mark reminder job failed", err)
	}
	return nil
}
