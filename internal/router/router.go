// Package router wires HTTP routes to their handlers and middleware.
// Public routes (health, stored media) live at the top level, auth
// endpoints under /v1/auth behind the rate limiter, and everything else
// under /v1 behind JWT authentication.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nordx/jobcard-backend/internal/config"
	"github.com/nordx/jobcard-backend/internal/handler"
	"github.com/nordx/jobcard-backend/internal/middleware"
	"github.com/nordx/jobcard-backend/internal/storage"
)

// RegisterRoutes registers the unauthenticated surface: the health check
// and the static media mount serving stored photos, signatures and logos.
func RegisterRoutes(e *echo.Echo, store *storage.LocalStore) {
	e.GET("/healthz", handler.Health)
	e.Static(storage.PublicPrefix, store.Root())
}

// RegisterAuth registers the authentication endpoints under /v1/auth.
// The whole group sits behind the Redis token bucket so that credential
// stuffing and reset-mail abuse are throttled per client.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rl config.RateLimitConfig, rdb *redis.Client, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.Use(middleware.NewTokenBucket(rl, rdb))
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	auth := protectedGroup(e, jwtSecret)
	auth.GET("/me", a.Me)
}

// protectedGroup returns the /v1 group with JWT auth and the role gate
// applied. Both application roles may use the general API; the admin
// surface tightens this further.
func protectedGroup(e *echo.Echo, jwtSecret string) *echo.Group {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "TECHNICIAN"))
	return g
}
