package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/config"
	"github.com/iliyamo/guestlist-rsvp/internal/model"
	"github.com/iliyamo/guestlist-rsvp/internal/report"
	"github.com/iliyamo/guestlist-rsvp/internal/repository"
	"github.com/iliyamo/guestlist-rsvp/internal/roster"
	"github.com/iliyamo/guestlist-rsvp/internal/utils"
)

// HotelHandler serves the read-only partner surface. Every query is
// scoped by the email claim: a hotel only ever sees events whose
// assigned_hotel_email matches its login email, and there is no write
// path at all.
type HotelHandler struct {
	Cfg     config.Config
	Events  *repository.EventRepo
	Guests  *repository.GuestRepo
	Reports *report.Generator
}

// NewHotelHandler constructs a HotelHandler and panics if any dependency is nil.
func NewHotelHandler(cfg config.Config, events *repository.EventRepo, guests *repository.GuestRepo, reports *report.Generator) *HotelHandler {
	if events == nil || guests == nil || reports == nil {
		panic("nil dependency passed to NewHotelHandler")
	}
	return &HotelHandler{Cfg: cfg, Events: events, Guests: guests, Reports: reports}
}

// assignedEvent resolves the :id event if it is assigned to the
// calling hotel. Returns nil when a response was already written.
func (h *HotelHandler) assignedEvent(c echo.Context, ctx context.Context) (*model.Event, error) {
	email, err := getEmail(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.GetByIDAndHotelEmail(ctx, id, email)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return e, nil
}

// ListEvents returns the events assigned to this hotel.
func (h *HotelHandler) ListEvents(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByHotelEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e, h.Cfg.PublicBaseURL))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// ListGuests returns the guest list of an assigned event, optionally
// filtered by ?q=.
func (h *HotelHandler) ListGuests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.assignedEvent(c, ctx)
	if e == nil {
		return err
	}
	guests, err := h.Guests.ListByEvent(ctx, e.ID, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"guests": toGuestResps(guests)})
}

// ExportGuests streams the guest list as CSV, including the Docs
// Uploaded column hotels use to chase missing ID documents.
func (h *HotelHandler) ExportGuests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	e, err := h.assignedEvent(c, ctx)
	if e == nil {
		return err
	}
	guests, err := h.Guests.ListByEvent(ctx, e.ID, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	var buf bytes.Buffer
	if err := roster.Export(&buf, guests, true); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="guests.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// GuestReport renders a guest's document report for front-desk use.
func (h *HotelHandler) GuestReport(c echo.Context) error {
	gid, err := pathID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	e, err := h.assignedEvent(c, ctx)
	if e == nil {
		return err
	}
	g, err := h.Guests.GetByIDAndEvent(ctx, gid, e.ID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	pdf, err := h.Reports.Build(ctx, e.Name, e.Date, g)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, utils.ReportFilename(g.Name)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
