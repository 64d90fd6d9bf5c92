package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/config"
	"github.com/nordx/jobcard-backend/internal/media"
	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/repository"
	"github.com/nordx/jobcard-backend/internal/storage"
)

// AdminHandler serves tenant administration: company branding, user
// management and the cross-tenant company overview.
type AdminHandler struct {
	Cfg       config.Config
	Companies *repository.CompanyRepo
	Users     *repository.UserRepo
	Store     *storage.LocalStore
}

func NewAdminHandler(cfg config.Config, co *repository.CompanyRepo, u *repository.UserRepo, st *storage.LocalStore) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Companies: co, Users: u, Store: st}
}

// ----- DTOs -----

type companyResp struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	LogoPath     *string   `json:"logo_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCompanyResp(co *model.Company) companyResp {
	return companyResp{
		ID: co.ID, Name: co.Name, Address: co.Address,
		ContactEmail: co.ContactEmail, ContactPhone: co.ContactPhone,
		LogoPath: co.LogoPath, CreatedAt: co.CreatedAt,
	}
}

// GetCompany returns the caller's tenant with its branding.
func (h *AdminHandler) GetCompany(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	co, err := h.Companies.GetByID(ctx, companyID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toCompanyResp(co))
}

// UpdateCompany rewrites the tenant's branding from a multipart form.
// The optional "logo" file is normalized like any photo and must be a
// decodable image; it replaces the previous logo only when present.
func (h *AdminHandler) UpdateCompany(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	name := formValue(c, "name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	address := formValue(c, "address")
	contactEmail := strings.ToLower(formValue(c, "contact_email"))
	contactPhone := formValue(c, "contact_phone")

	var logoPath *string
	if fh, err := c.FormFile("logo"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading logo failed"})
		}
		raw, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reading logo failed"})
		}
		n := media.NormalizePhoto(raw)
		if n.Fallback {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "logo is not a valid image"})
		}
		p, err := h.Store.Save(storage.CategoryCompany, n.Ext, n.Data)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store logo failed"})
		}
		logoPath = &p
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Companies.Update(ctx, companyID, name, address, contactEmail, contactPhone, logoPath); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	co, err := h.Companies.GetByID(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toCompanyResp(co))
}

// ListUsers returns the tenant's users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.ListByCompany(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{
			ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
			CompanyID: companyIDOrZero(u.CompanyID),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // ADMIN | TECHNICIAN
}

// CreateUser adds a user to the caller's tenant.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil || companyID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tenant"})
	}

	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password too short"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleTechnician {
		role = model.RoleTechnician
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, &companyID, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userPart{
		ID: uid, Name: req.Name, Email: req.Email, Role: role, CompanyID: companyID,
	})
}

// ListCompanies returns every tenant with its user count.
func (h *AdminHandler) ListCompanies(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	companies, err := h.Companies.ListWithUserCounts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	type companyCountResp struct {
		companyResp
		UserCount int `json:"user_count"`
	}
	out := make([]companyCountResp, 0, len(companies))
	for _, co := range companies {
		out = append(out, companyCountResp{
			companyResp: toCompanyResp(&co.Company),
			UserCount:   co.UserCount,
		})
	}
	return c.JSON(http.StatusOK, out)
}
