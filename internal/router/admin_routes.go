package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/handler"    // admin handlers
	"github.com/iliyamo/guestlist-rsvp/internal/middleware" // JWT + role middlewares
	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Events ----
	g.POST("/events", a.CreateEvent)
	g.GET("/events", a.ListEvents)
	g.GET("/events/:id", a.GetEvent)
	g.PATCH("/events/:id", a.UpdateEvent)
	// Deletion cascades the guest list and requires the owner's
	// password in the body as re-confirmation.
	g.DELETE("/events/:id", a.DeleteEvent)

	// ---- Hotel assignment ----
	g.PUT("/events/:id/hotel", a.AssignHotel)
	g.DELETE("/events/:id/hotel", a.RemoveHotel)

	// ---- Guests ----
	g.GET("/events/:id/guests", a.ListGuests) // ?q= filters by name
	g.POST("/events/:id/guests", a.AddGuest)
	g.PATCH("/events/:id/guests/:gid", a.UpdateGuest)
	g.DELETE("/events/:id/guests/:gid", a.DeleteGuest)

	// ---- Roster I/O ----
	g.POST("/events/:id/guests/import", a.ImportGuests) // multipart CSV
	g.GET("/events/:id/guests/export", a.ExportGuests)
	g.GET("/events/:id/guests/:gid/report", a.GuestReport)
}
