package repository

import (
	"context"
	"database/sql"

	"github.com/nordx/jobcard-backend/internal/model"
)

// CompanyRepo provides persistence for tenants and their branding.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo returns a new CompanyRepo bound to the given database.
func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{db: db} }

const companyColumns = `id, name, address, contact_email, contact_phone, logo_path, created_at`

func scanCompany(row interface{ Scan(...any) error }) (*model.Company, error) {
	var c model.Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.ContactEmail, &c.ContactPhone,
		&c.LogoPath, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns a company by primary key.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// Update rewrites a company's branding fields. The logo path is only
// overwritten when non-nil so that updates without a new logo keep the
// existing one.
func (r *CompanyRepo) Update(ctx context.Context, id uint64, name, address, email, phone string, logoPath *string) error {
	var err error
	if logoPath != nil {
		_, err = r.db.ExecContext(ctx,
			`UPDATE companies SET name=?, address=?, contact_email=?, contact_phone=?, logo_path=? WHERE id=?`,
			name, address, email, phone, *logoPath, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE companies SET name=?, address=?, contact_email=?, contact_phone=? WHERE id=?`,
			name, address, email, phone, id)
	}
	return err
}

// CompanyWithUserCount augments a company with the number of users it
// has; used by the super-admin overview.
type CompanyWithUserCount struct {
	model.Company
	UserCount int
}

// ListWithUserCounts returns every tenant together with its user count.
func (r *CompanyRepo) ListWithUserCounts(ctx context.Context) ([]*CompanyWithUserCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.address, c.contact_email, c.contact_phone, c.logo_path,
		        c.created_at, COUNT(u.id)
		   FROM companies c
		   LEFT JOIN users u ON u.company_id = c.id
		  GROUP BY c.id
		  ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CompanyWithUserCount
	for rows.Next() {
		var c CompanyWithUserCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.ContactEmail,
			&c.ContactPhone, &c.LogoPath, &c.CreatedAt, &c.UserCount); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
