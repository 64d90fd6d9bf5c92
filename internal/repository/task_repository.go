package repository

import (
	"context"
	"database/sql"

	"github.com/nordx/jobcard-backend/internal/model"
)

// TaskRepo provides tenant-scoped persistence for scheduled visits.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo returns a new TaskRepo bound to the given database.
func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

// Create inserts a task and populates its ID. The caller must have
// already verified that the client belongs to the same tenant.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (company_id, client_id, created_by, title, description,
		   start_datetime, end_datetime, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		t.CompanyID, t.ClientID, t.CreatedBy, t.Title, t.Description,
		t.StartDatetime, t.EndDatetime, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListByClient returns a client's tasks in chronological order, scoped
// to the given tenant.
func (r *TaskRepo) ListByClient(ctx context.Context, companyID, clientID uint64) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, client_id, created_by, title, description,
		        start_datetime, end_datetime, status, created_at
		   FROM tasks
		  WHERE client_id = ? AND company_id = ?
		  ORDER BY start_datetime ASC`,
		clientID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.ClientID, &t.CreatedBy,
			&t.Title, &t.Description, &t.StartDatetime, &t.EndDatetime,
			&t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
