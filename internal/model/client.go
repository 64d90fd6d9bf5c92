package model

import "time"

// Client is a customer site a company performs work for. Job cards may
// reference a client, but they also carry denormalized copies of the
// client's name, address and contacts so that the card reflects the
// details as they were on the day of the visit.
//
// Fields:
//
//	ID            – primary key identifier.
//	CompanyID     – owning tenant.
//	ClientCode    – short human reference code (nullable).
//	Name          – client name.
//	SiteAddress   – default site address (nullable).
//	ContactPerson – default on-site contact (nullable).
//	ContactNumber – default contact phone (nullable).
//	Email         – client email (nullable).
//	CreatedAt     – creation timestamp.
type Client struct {
	ID            uint64    // clients.id
	CompanyID     uint64    // clients.company_id
	ClientCode    *string   // clients.client_code (nullable)
	Name          string    // clients.name
	SiteAddress   *string   // clients.site_address (nullable)
	ContactPerson *string   // clients.contact_person (nullable)
	ContactNumber *string   // clients.contact_number (nullable)
	Email         *string   // clients.email (nullable)
	CreatedAt     time.Time // clients.created_at
}
