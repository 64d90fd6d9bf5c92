package model

import "time"

// Company is the tenant record. Every client, task, job card and user is
// scoped to exactly one company, and every read filters on company_id.
// Branding fields (name, logo, contacts) feed the rendered job-card PDF
// header, and ContactEmail is the recipient of job-card notifications.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name of the tenant.
//	Address      – postal address (nullable).
//	ContactEmail – address job-card mails are sent to (nullable).
//	ContactPhone – phone number printed on the PDF header (nullable).
//	LogoPath     – public /uploads path of the logo image (nullable).
//	CreatedAt    – creation timestamp.
type Company struct {
	ID           uint64    // companies.id
	Name         string    // companies.name
	Address      *string   // companies.address (nullable)
	ContactEmail *string   // companies.contact_email (nullable)
	ContactPhone *string   // companies.contact_phone (nullable)
	LogoPath     *string   // companies.logo_path (nullable)
	CreatedAt    time.Time // companies.created_at
}
