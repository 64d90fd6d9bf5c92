package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/repository"
)

// ClientHandler serves the client registry endpoints.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

func NewClientHandler(r *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: r}
}

// ----- DTOs -----

type clientReq struct {
	ClientCode    string `json:"client_code"`
	Name          string `json:"name"`
	SiteAddress   string `json:"site_address"`
	ContactPerson string `json:"contact_person"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

type clientResp struct {
	ID            uint64    `json:"id"`
	ClientCode    *string   `json:"client_code,omitempty"`
	Name          string    `json:"name"`
	SiteAddress   *string   `json:"site_address,omitempty"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	ContactNumber *string   `json:"contact_number,omitempty"`
	Email         *string   `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toClientResp(cl *model.Client) clientResp {
	return clientResp{
		ID: cl.ID, ClientCode: cl.ClientCode, Name: cl.Name,
		SiteAddress: cl.SiteAddress, ContactPerson: cl.ContactPerson,
		ContactNumber: cl.ContactNumber, Email: cl.Email, CreatedAt: cl.CreatedAt,
	}
}

// Create registers a new client under the caller's tenant.
func (h *ClientHandler) Create(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	cl := &model.Client{
		CompanyID:     companyID,
		ClientCode:    optionalStr(req.ClientCode),
		Name:          req.Name,
		SiteAddress:   optionalStr(req.SiteAddress),
		ContactPerson: optionalStr(req.ContactPerson),
		ContactNumber: optionalStr(req.ContactNumber),
		Email:         optionalStr(req.Email),
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Clients.Create(ctx, cl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create client failed"})
	}
	cl.CreatedAt = time.Now().UTC()
	return c.JSON(http.StatusCreated, toClientResp(cl))
}

// List returns the tenant's clients, optionally filtered with ?search=.
func (h *ClientHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	clients, err := h.Clients.ListByCompany(ctx, companyID, strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]clientResp, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResp(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one client, tenant-scoped.
func (h *ClientHandler) Get(c echo.Context) error {
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

	cl, err := h.Clients.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toClientResp(cl))
}

func optionalStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
