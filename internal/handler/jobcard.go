package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/media"
	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/repository"
	"github.com/nordx/jobcard-backend/internal/service"
	"github.com/nordx/jobcard-backend/internal/storage"
)

// JobCardHandler serves the submission endpoint and the read side of
// job cards.
type JobCardHandler struct {
	Submissions *service.SubmissionService
	Cards       *repository.JobCardRepo
	Store       *storage.LocalStore
}

func NewJobCardHandler(s *service.SubmissionService, cards *repository.JobCardRepo, store *storage.LocalStore) *JobCardHandler {
	return &JobCardHandler{Submissions: s, Cards: cards, Store: store}
}

// ----- DTOs -----

type jobCardResp struct {
	ID                 uint64    `json:"id"`
	JobNumber          string    `json:"job_number"`
	ClientID           *uint64   `json:"client_id,omitempty"`
	TaskID             *uint64   `json:"task_id,omitempty"`
	ClientName         string    `json:"client_name"`
	SiteAddress        string    `json:"site_address"`
	ContactPerson      string    `json:"contact_person"`
	ContactNumber      *string   `json:"contact_number,omitempty"`
	TechnicianName     string    `json:"technician_name"`
	ArrivalTime        string    `json:"arrival_time"`
	DepartureTime      string    `json:"departure_time"`
	HoursWorked        float64   `json:"hours_worked"`
	InstructionGivenBy *string   `json:"instruction_given_by,omitempty"`
	CustomerEmail      *string   `json:"customer_email,omitempty"`
	JobDescription     string    `json:"job_description"`
	MaterialsUsed      *string   `json:"materials_used,omitempty"`
	SignaturePath      *string   `json:"signature_path,omitempty"`
	BeforePhotos       []string  `json:"before_photos"`
	AfterPhotos        []string  `json:"after_photos"`
	MaterialPhotos     []string  `json:"material_photos"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

func toJobCardResp(c *model.JobCard) jobCardResp {
	return jobCardResp{
		ID: c.ID, JobNumber: c.JobNumber, ClientID: c.ClientID, TaskID: c.TaskID,
		ClientName: c.ClientName, SiteAddress: c.SiteAddress,
		ContactPerson: c.ContactPerson, ContactNumber: c.ContactNumber,
		TechnicianName: c.TechnicianName, ArrivalTime: c.ArrivalTime,
		DepartureTime: c.DepartureTime, HoursWorked: c.HoursWorked,
		InstructionGivenBy: c.InstructionGivenBy, CustomerEmail: c.CustomerEmail,
		JobDescription: c.JobDescription, MaterialsUsed: c.MaterialsUsed,
		SignaturePath: c.SignaturePath, BeforePhotos: c.BeforePhotos,
		AfterPhotos: c.AfterPhotos, MaterialPhotos: c.MaterialPhotos,
		Status: c.Status, CreatedAt: c.CreatedAt,
	}
}

// Submit accepts a multipart job-card submission: text fields, photo
// files under before_photos/after_photos/material_photos, and an
// optional base64 signature field. On success it answers as soon as the
// card is durable; rendering and mailing happen behind the broker.
func (h *JobCardHandler) Submit(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
	}

	in := &service.SubmissionInput{
		ClientName:         formValue(c, "client_name"),
		SiteAddress:        formValue(c, "site_address"),
		ContactPerson:      formValue(c, "contact_person"),
		ContactNumber:      formValue(c, "contact_number"),
		TechnicianName:     formValue(c, "technician_name"),
		ArrivalTime:        formValue(c, "arrival_time"),
		DepartureTime:      formValue(c, "departure_time"),
		InstructionGivenBy: formValue(c, "instruction_given_by"),
		CustomerEmail:      formValue(c, "customer_email"),
		JobDescription:     formValue(c, "job_description"),
		MaterialsUsed:      formValue(c, "materials_used"),
		Signature:          formValue(c, "signature"),
	}
	if in.ClientID, err = formID(c, "client_id"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
	}
	if in.TaskID, err = formID(c, "task_id"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task_id"})
	}

	if in.BeforePhotos, err = readUploads(form.File["before_photos"]); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading before_photos failed"})
	}
	if in.AfterPhotos, err = readUploads(form.File["after_photos"]); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading after_photos failed"})
	}
	if in.MaterialPhotos, err = readUploads(form.File["material_photos"]); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading material_photos failed"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	card, err := h.Submissions.Submit(ctx, companyID, &userID, in)
	if err != nil {
		var missing *service.MissingFieldError
		switch {
		case errors.As(err, &missing):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": missing.Error()})
		case errors.Is(err, service.ErrBadTime):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time/departure_time must be HH:MM"})
		case errors.Is(err, media.ErrBadSignature):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "signature is not valid base64"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submission failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":       "success",
		"job_number":   card.JobNumber,
		"hours_worked": card.HoursWorked,
	})
}

// List returns the tenant's job cards, newest first.
func (h *JobCardHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cards, err := h.Cards.ListByCompany(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]jobCardResp, 0, len(cards))
	for _, card := range cards {
		out = append(out, toJobCardResp(card))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one job card by ID, tenant-scoped.
func (h *JobCardHandler) Get(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toJobCardResp(card))
}

// PDF streams the rendered document for a card. Rendering is deferred,
// so a freshly submitted card answers 404 until the consumer has
// produced the file.
func (h *JobCardHandler) PDF(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path := h.Store.ArtifactPath(card.JobNumber)
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pdf not generated yet"})
	}
	return c.Attachment(path, card.JobNumber+".pdf")
}

// UpdateStatus transitions a card between the submitted, processed and
// completed states. Registered under the admin group.
func (h *JobCardHandler) UpdateStatus(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be submitted, processed or completed"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Cards.UpdateStatus(ctx, companyID, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// ----- multipart helpers -----

func formValue(c echo.Context, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

func formID(c echo.Context, key string) (*uint64, error) {
	v := formValue(c, key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// readUploads drains each uploaded file into memory in form order.
func readUploads(files []*multipart.FileHeader) ([][]byte, error) {
	out := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
