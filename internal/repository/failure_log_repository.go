package repository

import (
	"context"
	"database/sql"

	"github.com/nordx/jobcard-backend/internal/model"
)

// FailureLogRepo records deferred-stage failures durably so that
// operators can discover and manually replay failed renders or mails.
// Nothing in the system retries these automatically.
type FailureLogRepo struct {
	db *sql.DB
}

// NewFailureLogRepo returns a new FailureLogRepo bound to the database.
func NewFailureLogRepo(db *sql.DB) *FailureLogRepo { return &FailureLogRepo{db: db} }

// Record inserts one failure row. Stage is "render", "notify" or
// "enqueue".
func (r *FailureLogRepo) Record(ctx context.Context, jobCardID uint64, jobNumber, stage, detail string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deferred_failures (job_card_id, job_number, stage, detail)
		 VALUES (?,?,?,?)`,
		jobCardID, jobNumber, stage, detail)
	return err
}

// ListByJobCard returns the recorded failures for one card, oldest first.
func (r *FailureLogRepo) ListByJobCard(ctx context.Context, jobCardID uint64) ([]*model.DeferredFailure, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_card_id, job_number, stage, detail, created_at
		   FROM deferred_failures WHERE job_card_id = ? ORDER BY id`,
		jobCardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.DeferredFailure
	for rows.Next() {
		var f model.DeferredFailure
		if err := rows.Scan(&f.ID, &f.JobCardID, &f.JobNumber, &f.Stage,
			&f.Detail, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
