package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/guestlist-rsvp/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/guestlist-rsvp/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/guestlist-rsvp/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the static file route that
// serves uploaded ID document images.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	// Load balancers and monitoring systems use this to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
	// Uploaded ID documents are plain files on disk; their URLs are
	// stored on the guests' attendee records.
	e.Static("/uploads", uploadDir)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login, token refresh. Each handler generates or exchanges tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access issues a new
	// access token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT middleware: the handler accepts a
	// refresh_token body or a bearer token and revokes accordingly.
	g.POST("/logout", a.Logout)

	// Protected endpoints under /v1 require a valid access token with
	// either role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleHotel))
	auth.GET("/me", a.Me)

	// Alias kept so clients can call either /v1/auth/logout or
	// /v1/logout with a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}
