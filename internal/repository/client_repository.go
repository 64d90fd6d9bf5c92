package repository

import (
	"context"
	"database/sql"

	"github.com/nordx/jobcard-backend/internal/model"
)

// ClientRepo provides tenant-scoped persistence for clients.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = `id, company_id, client_code, name, site_address,
	contact_person, contact_number, email, created_at`

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.CompanyID, &c.ClientCode, &c.Name, &c.SiteAddress,
		&c.ContactPerson, &c.ContactNumber, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a client under the given tenant and populates its ID.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (company_id, client_code, name, site_address,
		   contact_person, contact_number, email)
		 VALUES (?,?,?,?,?,?,?)`,
		c.CompanyID, c.ClientCode, c.Name, c.SiteAddress,
		c.ContactPerson, c.ContactNumber, c.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListByCompany returns a tenant's clients ordered by name. When search
// is non-empty the list is filtered to names containing it, matching
// case-insensitively.
func (r *ClientRepo) ListByCompany(ctx context.Context, companyID uint64, search string) ([]*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = ?`
	args := []any{companyID}
	if search != "" {
		query += ` AND name LIKE CONCAT('%', ?, '%')`
		args = append(args, search)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns a client by primary key, scoped to the given tenant.
func (r *ClientRepo) GetByID(ctx context.Context, companyID, id uint64) (*model.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ? AND company_id = ?`,
		id, companyID)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}
