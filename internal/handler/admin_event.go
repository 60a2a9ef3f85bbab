package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/config"
	"github.com/iliyamo/guestlist-rsvp/internal/model"
	"github.com/iliyamo/guestlist-rsvp/internal/report"
	"github.com/iliyamo/guestlist-rsvp/internal/repository"
	"github.com/iliyamo/guestlist-rsvp/internal/utils"
)

// AdminHandler bundles dependencies for the event-owner endpoints.
type AdminHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Events  *repository.EventRepo
	Guests  *repository.GuestRepo
	Reports *report.Generator
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(cfg config.Config, users *repository.UserRepo, events *repository.EventRepo, guests *repository.GuestRepo, reports *report.Generator) *AdminHandler {
	if users == nil || events == nil || guests == nil || reports == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: users, Events: events, Guests: guests, Reports: reports}
}

type eventReq struct {
	Name        string `json:"name"`
	Date        string `json:"date"` // YYYY-MM-DD or RFC 3339
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CreateEvent makes a new event with a freshly generated slug and
// returns it together with the shareable invite link.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.Event{
		OwnerID:     uid,
		Name:        req.Name,
		Date:        date,
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		Slug:        utils.Slugify(req.Name),
	}
	if err := h.Events.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Slug collision despite the random suffix; one retry
			// with a new suffix is enough in practice.
			e.Slug = utils.Slugify(req.Name)
			err = h.Events.Create(ctx, e)
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
		}
	}
	return c.JSON(http.StatusCreated, toEventResp(e, h.Cfg.PublicBaseURL))
}

// ListEvents returns the caller's events.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e, h.Cfg.PublicBaseURL))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// GetEvent returns one owned event together with its RSVP stats.
func (h *AdminHandler) GetEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	stats, err := h.Guests.StatsByEvent(ctx, e.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event": toEventResp(e, h.Cfg.PublicBaseURL),
		"stats": echo.Map{
			"total":     stats.Total,
			"accepted":  stats.Accepted,
			"declined":  stats.Declined,
			"pending":   stats.Pending,
			"attending": stats.Attending,
		},
	})
}

// UpdateEvent patches the editable fields. Absent fields keep their
// current values.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req struct {
		Name        *string `json:"name"`
		Date        *string `json:"date"`
		Location    *string `json:"location"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	if req.Name != nil {
		if n := strings.TrimSpace(*req.Name); n != "" {
			e.Name = n
		}
	}
	if req.Date != nil {
		d, err := parseEventDate(*req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		e.Date = d
	}
	if req.Location != nil {
		e.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if err := h.Events.Update(ctx, e.ID, uid, e.Name, e.Date, e.Location, e.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, toEventResp(e, h.Cfg.PublicBaseURL))
}

// DeleteEvent removes an event and its whole guest list. Deleting is
// irreversible, so the caller must re-confirm their password in the
// request body; a valid session alone is not enough.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "password mismatch"})
	}

	if err := h.Events.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignHotel grants a hotel account read-only access to the event's
// guest list. The email must belong to a registered HOTEL user; the
// hotel's display name is captured at assignment time.
func (h *AdminHandler) AssignHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no hotel account with that email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup hotel failed"})
	}
	if hotel.Role != model.RoleHotel {
		return c.JSON(http.StatusConflict, echo.Map{"error": "account is not a hotel"})
	}

	if err := h.Events.AssignHotel(ctx, id, uid, hotel.Email, hotel.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign hotel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"assigned_hotel_email": hotel.Email, "assigned_hotel_name": hotel.Name})
}

// RemoveHotel revokes the hotel's access immediately.
func (h *AdminHandler) RemoveHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.RemoveHotel(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove hotel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
