package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/handler"
	"github.com/iliyamo/guestlist-rsvp/internal/middleware"
	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// RegisterHotel registers HOTEL-scoped endpoints under /v1/hotel. All
// routes require a valid JWT and the HOTEL role; the handlers scope
// every query by the token's email claim, so a hotel only ever sees
// the events assigned to it. The surface is strictly read-only.
func RegisterHotel(e *echo.Echo, h *handler.HotelHandler, jwtSecret string) {
	g := e.Group(
		"/v1/hotel",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleHotel),
	)
	g.GET("/events", h.ListEvents)
	g.GET("/events/:id/guests", h.ListGuests) // ?q= filters by name
	g.GET("/events/:id/guests/export", h.ExportGuests)
	g.GET("/events/:id/guests/:gid/report", h.GuestReport)
}
