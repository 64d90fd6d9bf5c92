package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/repository"
)

// TaskHandler serves the scheduled-visit endpoints.
type TaskHandler struct {
	Tasks   *repository.TaskRepo
	Clients *repository.ClientRepo
}

func NewTaskHandler(t *repository.TaskRepo, cl *repository.ClientRepo) *TaskHandler {
	return &TaskHandler{Tasks: t, Clients: cl}
}

// ----- DTOs -----

type taskReq struct {
	ClientID      uint64    `json:"client_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

type taskResp struct {
	ID            uint64    `json:"id"`
	ClientID      uint64    `json:"client_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTaskResp(t *model.Task) taskResp {
	return taskResp{
		ID: t.ID, ClientID: t.ClientID, Title: t.Title, Description: t.Description,
		StartDatetime: t.StartDatetime, EndDatetime: t.EndDatetime,
		Status: t.Status, CreatedAt: t.CreatedAt,
	}
}

// Create books a visit against one of the tenant's clients.
func (h *TaskHandler) Create(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.ClientID == 0 || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id/title required"})
	}
	if !req.EndDatetime.After(req.StartDatetime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_datetime must be after start_datetime"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// Booking against another tenant's client must read as not-found.
	if _, err := h.Clients.GetByID(ctx, companyID, req.ClientID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	t := &model.Task{
		CompanyID:     companyID,
		ClientID:      req.ClientID,
		CreatedBy:     &userID,
		Title:         req.Title,
		Description:   optionalStr(req.Description),
		StartDatetime: req.StartDatetime.UTC(),
		EndDatetime:   req.EndDatetime.UTC(),
		Status:        "open",
	}
	if err := h.Tasks.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	t.CreatedAt = time.Now().UTC()
	return c.JSON(http.StatusCreated, toTaskResp(t))
}

// ListByClient returns a client's visits in chronological order.
func (h *TaskHandler) ListByClient(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tasks, err := h.Tasks.ListByClient(ctx, companyID, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]taskResp, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResp(t))
	}
	return c.JSON(http.StatusOK, out)
}
