package model

import "time"

// Task is a scheduled visit booked against a client. Tasks are planning
// records only; the completed visit is captured by a JobCard.
//
// Fields:
//
//	ID            – primary key identifier.
//	CompanyID     – owning tenant.
//	ClientID      – client the visit is booked for.
//	CreatedBy     – user who created the booking (nullable).
//	Title         – short summary of the visit.
//	Description   – free-text details (nullable).
//	StartDatetime – booked start.
//	EndDatetime   – booked end; must be after StartDatetime.
//	Status        – booking state, "open" when created.
//	CreatedAt     – creation timestamp.
type Task struct {
	ID            uint64    // tasks.id
	CompanyID     uint64    // tasks.company_id
	ClientID      uint64    // tasks.client_id
	CreatedBy     *uint64   // tasks.created_by (nullable)
	Title         string    // tasks.title
	Description   *string   // tasks.description (nullable)
	StartDatetime time.Time // tasks.start_datetime
	EndDatetime   time.Time // tasks.end_datetime
	Status        string    // tasks.status
	CreatedAt     time.Time // tasks.created_at
}
