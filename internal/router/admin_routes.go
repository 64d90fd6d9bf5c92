package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nordx/jobcard-backend/internal/handler"
	"github.com/nordx/jobcard-backend/internal/middleware"
)

// RegisterAdmin registers the tenant-administration surface under
// /v1/admin, restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jc *handler.JobCardHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.PATCH("/jobcards/:id/status", jc.UpdateStatus)
	g.GET("/company", a.GetCompany)
	g.POST("/company", a.UpdateCompany)
	g.GET("/users", a.ListUsers)
	g.POST("/users", a.CreateUser)
	g.GET("/companies", a.ListCompanies)
}
