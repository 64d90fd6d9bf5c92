package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/nordx/jobcard-backend/internal/model"
)

// JobCardRepo provides persistence for job cards, including the date
// scoped sequential job-number allocation. Allocation and insertion run
// inside one transaction so that no number is ever consumed without a
// corresponding row and vice versa.
type JobCardRepo struct {
	db *sql.DB
}

// NewJobCardRepo returns a new JobCardRepo bound to the given database.
func NewJobCardRepo(db *sql.DB) *JobCardRepo { return &JobCardRepo{db: db} }

// mysqlDuplicateEntry is the server error number for unique-key violations.
const mysqlDuplicateEntry = 1062

// allocAttempts bounds the retry loop on duplicate-key conflicts. The row
// lock taken by the allocation query serializes same-tenant submissions,
// so conflicts are only possible across separate database sessions racing
// on the first card of a day; a handful of retries is plenty.
const allocAttempts = 5

// CreateWithNumber mints the next job number for the card's tenant and
// today's UTC date, stores it on the card and inserts the row with status
// "submitted". The day's highest existing number is read with a locking
// SELECT inside the insert transaction; a UNIQUE(company_id, job_number)
// key backstops the lock and any duplicate-key error triggers a fresh
// read and retry. On success the card's ID, JobNumber, Status and
// CreatedAt fields are populated.
func (r *JobCardRepo) CreateWithNumber(ctx context.Context, card *model.JobCard) error {
	prefix := dayPrefix(time.Now())

	var lastErr error
	for attempt := 0; attempt < allocAttempts; attempt++ {
		err := r.tryCreate(ctx, card, prefix)
		if err == nil {
			return nil
		}
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			lastErr = err
			continue // lost the race, re-read the day's last number
		}
		return err
	}
	return fmt.Errorf("job number allocation: %w", lastErr)
}

func (r *JobCardRepo) tryCreate(ctx context.Context, card *model.JobCard, prefix string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Highest existing number for this tenant today. The fixed-width,
	// zero-padded suffix makes lexicographic DESC ordering correct. FOR
	// UPDATE serializes concurrent allocations on the same tenant-day.
	var last string
	err = tx.QueryRowContext(ctx,
		`SELECT job_number FROM job_cards
		  WHERE company_id = ? AND job_number LIKE CONCAT(?, '%')
		  ORDER BY job_number DESC LIMIT 1 FOR UPDATE`,
		card.CompanyID, prefix,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	card.JobNumber = formatJobNumber(prefix, nextSequence(last))
	card.Status = model.StatusSubmitted
	card.CreatedAt = time.Now().UTC()

	before, err := json.Marshal(card.BeforePhotos)
	if err != nil {
		return err
	}
	after, err := json.Marshal(card.AfterPhotos)
	if err != nil {
		return err
	}
	materials, err := json.Marshal(card.MaterialPhotos)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO job_cards
		  (job_number, company_id, client_id, task_id, created_by,
		   client_name, site_address, contact_person, contact_number,
		   technician_name, arrival_time, departure_time, hours_worked,
		   instruction_given_by, customer_email, job_description,
		   materials_used, signature_path, before_photos, after_photos,
		   material_photos, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		card.JobNumber, card.CompanyID, card.ClientID, card.TaskID, card.CreatedBy,
		card.ClientName, card.SiteAddress, card.ContactPerson, card.ContactNumber,
		card.TechnicianName, card.ArrivalTime, card.DepartureTime, card.HoursWorked,
		card.InstructionGivenBy, card.CustomerEmail, card.JobDescription,
		card.MaterialsUsed, card.SignaturePath, string(before), string(after),
		string(materials), card.Status, card.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	card.ID = uint64(id)

	return tx.Commit()
}

const jobCardColumns = `id, job_number, company_id, client_id, task_id, created_by,
	client_name, site_address, contact_person, contact_number, technician_name,
	arrival_time, departure_time, hours_worked, instruction_given_by,
	customer_email, job_description, materials_used, signature_path,
	before_photos, after_photos, material_photos, status, created_at`

func scanJobCard(row interface{ Scan(...any) error }) (*model.JobCard, error) {
	var (
		c                        model.JobCard
		before, after, materials []byte
	)
	err := row.Scan(
		&c.ID, &c.JobNumber, &c.CompanyID, &c.ClientID, &c.TaskID, &c.CreatedBy,
		&c.ClientName, &c.SiteAddress, &c.ContactPerson, &c.ContactNumber,
		&c.TechnicianName, &c.ArrivalTime, &c.DepartureTime, &c.HoursWorked,
		&c.InstructionGivenBy, &c.CustomerEmail, &c.JobDescription,
		&c.MaterialsUsed, &c.SignaturePath, &before, &after, &materials,
		&c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(before, &c.BeforePhotos); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(after, &c.AfterPhotos); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(materials, &c.MaterialPhotos); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns a job card by primary key, scoped to the given tenant.
// Cards belonging to other tenants are reported as ErrNotFound rather
// than ErrForbidden so that their existence is not leaked.
func (r *JobCardRepo) GetByID(ctx context.Context, companyID, id uint64) (*model.JobCard, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobCardColumns+` FROM job_cards WHERE id = ? AND company_id = ?`,
		id, companyID)
	c, err := scanJobCard(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// ListByCompany returns all job cards for a tenant, newest first.
func (r *JobCardRepo) ListByCompany(ctx context.Context, companyID uint64) ([]*model.JobCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobCardColumns+` FROM job_cards WHERE company_id = ? ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.JobCard
	for rows.Next() {
		c, err := scanJobCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a card between the submitted, processed and
// completed states. The status value must already be validated by the
// caller; the update is tenant-scoped.
func (r *JobCardRepo) UpdateStatus(ctx context.Context, companyID, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_cards SET status = ? WHERE id = ? AND company_id = ?`,
		status, id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "wrong status write" from "no such card": a card in
		// the target state already counts as success.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM job_cards WHERE id = ? AND company_id = ?)`,
			id, companyID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}
