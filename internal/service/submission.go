package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nordx/jobcard-backend/internal/media"
	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/queue"
	"github.com/nordx/jobcard-backend/internal/storage"
)

// MissingFieldError reports a required submission field that was empty.
// It is a client error and is raised before any side effect, so a
// rejected submission never consumes a job number or stores a file.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// cardCreator persists a card and allocates its job number atomically.
type cardCreator interface {
	CreateWithNumber(ctx context.Context, card *model.JobCard) error
}

// companyGetter loads the tenant for event enrichment.
type companyGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Company, error)
}

// mediaStore writes processed uploads and returns their public paths.
type mediaStore interface {
	Save(category, ext string, data []byte) (string, error)
}

// failureRecorder persists a deferred-stage failure.
type failureRecorder interface {
	Record(ctx context.Context, jobCardID uint64, jobNumber, stage, detail string) error
}

// eventPublisher hands the submitted event to the broker.
type eventPublisher func(ctx context.Context, event queue.JobCardSubmittedEvent) error

// SubmissionInput carries one parsed multipart submission. Photo slices
// hold the raw uploaded bytes in form order; Signature is the base64
// payload (optionally with a data-URL header) or empty.
type SubmissionInput struct {
	ClientID           *uint64
	TaskID             *uint64
	ClientName         string
	SiteAddress        string
	ContactPerson      string
	ContactNumber      string
	TechnicianName     string
	ArrivalTime        string
	DepartureTime      string
	InstructionGivenBy string
	CustomerEmail      string
	JobDescription     string
	MaterialsUsed      string
	Signature          string
	BeforePhotos       [][]byte
	AfterPhotos        [][]byte
	MaterialPhotos     [][]byte
}

// SubmissionService runs the synchronous half of a job-card submission:
// validate, process media, allocate the job number, persist, and hand
// the deferred work (PDF render, notification mail) to the broker. The
// response never waits for the deferred half.
type SubmissionService struct {
	cards     cardCreator
	companies companyGetter
	store     mediaStore
	failures  failureRecorder
	publish   eventPublisher
}

// NewSubmissionService wires the orchestrator from its collaborators.
func NewSubmissionService(cards cardCreator, companies companyGetter, store mediaStore, failures failureRecorder, publish eventPublisher) *SubmissionService {
	return &SubmissionService{cards: cards, companies: companies, store: store, failures: failures, publish: publish}
}

// requiredFields maps form field names to their accessors, in the order
// they are validated.
var requiredFields = []struct {
	name string
	get  func(*SubmissionInput) string
}{
	{"client_name", func(in *SubmissionInput) string { return in.ClientName }},
	{"site_address", func(in *SubmissionInput) string { return in.SiteAddress }},
	{"contact_person", func(in *SubmissionInput) string { return in.ContactPerson }},
	{"technician_name", func(in *SubmissionInput) string { return in.TechnicianName }},
	{"arrival_time", func(in *SubmissionInput) string { return in.ArrivalTime }},
	{"departure_time", func(in *SubmissionInput) string { return in.DepartureTime }},
	{"job_description", func(in *SubmissionInput) string { return in.JobDescription }},
}

// Submit validates the input, normalizes and stores its media, persists
// the card under a freshly allocated job number and publishes the
// submitted event. Validation and signature errors surface to the
// caller; a publish failure is recorded in deferred_failures and logged
// but never fails the submission, since the card itself is durable.
func (s *SubmissionService) Submit(ctx context.Context, companyID uint64, createdBy *uint64, in *SubmissionInput) (*model.JobCard, error) {
	for _, f := range requiredFields {
		if f.get(in) == "" {
			return nil, &MissingFieldError{Field: f.name}
		}
	}

	hours, err := ComputeHours(in.ArrivalTime, in.DepartureTime)
	if err != nil {
		return nil, err
	}

	var signaturePath *string
	if in.Signature != "" {
		sig, err := media.DecodeSignature(in.Signature)
		if err != nil {
			return nil, err
		}
		p, err := s.store.Save(storage.CategorySignatures, ".png", sig)
		if err != nil {
			return nil, fmt.Errorf("store signature: %w", err)
		}
		signaturePath = &p
	}

	before, err := s.storePhotos(storage.CategoryBefore, in.BeforePhotos)
	if err != nil {
		return nil, err
	}
	after, err := s.storePhotos(storage.CategoryAfter, in.AfterPhotos)
	if err != nil {
		return nil, err
	}
	materials, err := s.storePhotos(storage.CategoryMaterials, in.MaterialPhotos)
	if err != nil {
		return nil, err
	}

	card := &model.JobCard{
		CompanyID:          companyID,
		ClientID:           in.ClientID,
		TaskID:             in.TaskID,
		CreatedBy:          createdBy,
		ClientName:         in.ClientName,
		SiteAddress:        in.SiteAddress,
		ContactPerson:      in.ContactPerson,
		ContactNumber:      optional(in.ContactNumber),
		TechnicianName:     in.TechnicianName,
		ArrivalTime:        in.ArrivalTime,
		DepartureTime:      in.DepartureTime,
		HoursWorked:        hours,
		InstructionGivenBy: optional(in.InstructionGivenBy),
		CustomerEmail:      optional(in.CustomerEmail),
		JobDescription:     in.JobDescription,
		MaterialsUsed:      optional(in.MaterialsUsed),
		SignaturePath:      signaturePath,
		BeforePhotos:       before,
		AfterPhotos:        after,
		MaterialPhotos:     materials,
	}

	if err := s.cards.CreateWithNumber(ctx, card); err != nil {
		return nil, err
	}

	s.enqueue(ctx, card)
	return card, nil
}

// storePhotos normalizes each upload and writes the result, keeping form
// order. A photo that cannot be decoded is stored verbatim under a .bin
// name, so the stored list always has one entry per uploaded file.
func (s *SubmissionService) storePhotos(category string, raws [][]byte) ([]string, error) {
	paths := make([]string, 0, len(raws))
	for i, raw := range raws {
		n := media.NormalizePhoto(raw)
		if n.Fallback {
			log.Printf("submission: %s photo %d not decodable, storing raw", category, i)
		}
		p, err := s.store.Save(category, n.Ext, n.Data)
		if err != nil {
			return nil, fmt.Errorf("store %s photo: %w", category, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// enqueue publishes the submitted event. The card is already durable, so
// a broker outage only delays the render and mail; the failure is
// recorded for manual replay and the submission still succeeds.
func (s *SubmissionService) enqueue(ctx context.Context, card *model.JobCard) {
	ev := queue.JobCardSubmittedEvent{
		JobCardID:   card.ID,
		CompanyID:   card.CompanyID,
		JobNumber:   card.JobNumber,
		SubmittedAt: card.CreatedAt.Format(time.RFC3339),
	}
	if company, err := s.companies.GetByID(ctx, card.CompanyID); err == nil {
		ev.CompanyName = company.Name
		if company.ContactEmail != nil {
			ev.CompanyEmail = *company.ContactEmail
		}
	} else {
		log.Printf("submission: loading company %d for event failed: %v", card.CompanyID, err)
	}

	if err := s.publish(ctx, ev); err != nil {
		log.Printf("submission: publishing event for %s failed: %v", card.JobNumber, err)
		if rerr := s.failures.Record(ctx, card.ID, card.JobNumber, "enqueue", err.Error()); rerr != nil {
			log.Printf("submission: recording enqueue failure for %s failed: %v", card.JobNumber, rerr)
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
