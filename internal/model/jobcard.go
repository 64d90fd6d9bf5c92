package model

import "time"

// Job card status values. A card is created as StatusSubmitted and only
// ever changes through the privileged status-update endpoint; its
// descriptive fields are immutable after creation.
const (
	StatusSubmitted = "submitted"
	StatusProcessed = "processed"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the three job-card states.
func ValidStatus(s string) bool {
	return s == StatusSubmitted || s == StatusProcessed || s == StatusCompleted
}

// JobCard is the core business record representing one completed field
// service visit. The job number is unique per tenant and encodes the UTC
// date of creation plus a per-day sequence (DC-20260104-001). HoursWorked
// is always server-computed from the arrival and departure times; a value
// supplied by the client is discarded. Photo lists hold public /uploads
// paths; the files themselves are owned by the media store and are not
// deleted with the row.
//
// Fields:
//
//	ID                 – primary key identifier.
//	JobNumber          – date-scoped sequential identifier, unique per tenant.
//	CompanyID          – owning tenant.
//	ClientID           – linked client, if any.
//	TaskID             – linked booking, if any.
//	CreatedBy          – submitting technician's user id, if known.
//	ClientName         – denormalized client name at submission time.
//	SiteAddress        – denormalized site address.
//	ContactPerson      – on-site contact person.
//	ContactNumber      – on-site contact phone (nullable).
//	TechnicianName     – technician who performed the work.
//	ArrivalTime        – wall-clock HH:MM arrival, no date component.
//	DepartureTime      – wall-clock HH:MM departure.
//	HoursWorked        – derived duration in hours, two decimals, mod 24h.
//	InstructionGivenBy – who authorized the work (nullable).
//	CustomerEmail      – customer address captured on site (nullable).
//	JobDescription     – work performed.
//	MaterialsUsed      – free-text materials list (nullable).
//	SignaturePath      – public path of the stored signature image (nullable).
//	BeforePhotos       – public paths of "before" photos.
//	AfterPhotos        – public paths of "after" photos.
//	MaterialPhotos     – public paths of material receipt photos.
//	Status             – submitted | processed | completed.
//	CreatedAt          – creation timestamp (UTC).
type JobCard struct {
	ID                 uint64    // job_cards.id
	JobNumber          string    // job_cards.job_number
	CompanyID          uint64    // job_cards.company_id
	ClientID           *uint64   // job_cards.client_id (nullable)
	TaskID             *uint64   // job_cards.task_id (nullable)
	CreatedBy          *uint64   // job_cards.created_by (nullable)
	ClientName         string    // job_cards.client_name
	SiteAddress        string    // job_cards.site_address
	ContactPerson      string    // job_cards.contact_person
	ContactNumber      *string   // job_cards.contact_number (nullable)
	TechnicianName     string    // job_cards.technician_name
	ArrivalTime        string    // job_cards.arrival_time
	DepartureTime      string    // job_cards.departure_time
	HoursWorked        float64   // job_cards.hours_worked
	InstructionGivenBy *string   // job_cards.instruction_given_by (nullable)
	CustomerEmail      *string   // job_cards.customer_email (nullable)
	JobDescription     string    // job_cards.job_description
	MaterialsUsed      *string   // job_cards.materials_used (nullable)
	SignaturePath      *string   // job_cards.signature_path (nullable)
	BeforePhotos       []string  // job_cards.before_photos (JSON)
	AfterPhotos        []string  // job_cards.after_photos (JSON)
	MaterialPhotos     []string  // job_cards.material_photos (JSON)
	Status             string    // job_cards.status
	CreatedAt          time.Time // job_cards.created_at
}

// DeferredFailure records one failed post-response stage (rendering,
// notification or enqueueing) for a job card. Rows are written by the
// queue consumer and the orchestrator and exist so operators can find and
// manually replay failed renders or mails; nothing retries automatically.
//
// Fields:
//
//	ID        – primary key identifier.
//	JobCardID – card the failed stage belonged to.
//	JobNumber – denormalized job number for grepping logs.
//	Stage     – "render", "notify" or "enqueue".
//	Detail    – error text of the single attempt.
//	CreatedAt – when the failure was recorded.
type DeferredFailure struct {
	ID        uint64    // deferred_failures.id
	JobCardID uint64    // deferred_failures.job_card_id
	JobNumber string    // deferred_failures.job_number
	Stage     string    // deferred_failures.stage
	Detail    string    // deferred_failures.detail
	CreatedAt time.Time // deferred_failures.created_at
}
