package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
	"github.com/iliyamo/guestlist-rsvp/internal/queue"
	"github.com/iliyamo/guestlist-rsvp/internal/repository"
	"github.com/iliyamo/guestlist-rsvp/internal/rsvp"
	queue_publisher "github.com/iliyamo/guestlist-rsvp/internal/service"
	"github.com/iliyamo/guestlist-rsvp/internal/storage"
)

// PublicHandler serves the unauthenticated invite-page endpoints.
// Everything is keyed off the event slug from the shared link; a
// guest ID is only ever accepted together with the slug it belongs
// to, so IDs cannot be replayed across events.
type PublicHandler struct {
	Events *repository.EventRepo
	Guests *repository.GuestRepo
	Store  *storage.Store
}

// NewPublicHandler constructs a PublicHandler and panics if any dependency is nil.
func NewPublicHandler(events *repository.EventRepo, guests *repository.GuestRepo, store *storage.Store) *PublicHandler {
	if events == nil || guests == nil || store == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Events: events, Guests: guests, Store: store}
}

// eventBySlug resolves the :slug event. Returns nil when a response
// was already written.
func (h *PublicHandler) eventBySlug(c echo.Context, ctx context.Context) (*model.Event, error) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite link"})
	}
	e, err := h.Events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "invite not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load invite failed"})
	}
	return e, nil
}

// ResolveInvite returns the landing data for an invite link: just
// what a guest needs to recognize the event, nothing about the owner
// or the hotel assignment. This response is cached.
func (h *PublicHandler) ResolveInvite(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.eventBySlug(c, ctx)
	if e == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"name":        e.Name,
		"date":        e.Date,
		"location":    e.Location,
		"description": e.Description,
		"slug":        e.Slug,
		"id_types":    model.IDTypes,
	})
}

// publicGuest is the slim shape exposed during guest search: enough
// for a guest to pick their own invitation, nothing more.
type publicGuest struct {
	ID            uint64           `json:"id"`
	Name          string           `json:"name"`
	AllowedGuests int              `json:"allowed_guests"`
	Status        model.RSVPStatus `json:"status"`
}

// SearchGuests finds invitations by name within the event.
func (h *PublicHandler) SearchGuests(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if len(name) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name query too short"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.eventBySlug(c, ctx)
	if e == nil {
		return err
	}
	guests, err := h.Guests.SearchByName(ctx, e.ID, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	out := make([]publicGuest, 0, len(guests))
	for _, g := range guests {
		out = append(out, publicGuest{ID: g.ID, Name: g.Name, AllowedGuests: g.AllowedGuests, Status: g.Status})
	}
	return c.JSON(http.StatusOK, echo.Map{"guests": out})
}

type rsvpReq struct {
	Status            string           `json:"status"` // accepted | declined
	Attendees         []model.Attendee `json:"attendees"`
	Message           string           `json:"message"`
	ArrivalLocation   string           `json:"arrival_location"`
	ArrivalTime       string           `json:"arrival_time"`
	DepartureLocation string           `json:"departure_location"`
	DepartureTime     string           `json:"departure_time"`
}

// SubmitRSVP records a guest's reply. An accepted reply needs at
// least one named attendee; a declined reply always persists with
// zero attending no matter what the client staged. The flow machine
// rejects submissions from guests whose flow is already finished.
func (h *PublicHandler) SubmitRSVP(c echo.Context) error {
	gid, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req rsvpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.RSVPStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status != model.RSVPAccepted && status != model.RSVPDeclined {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be accepted or declined"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.eventBySlug(c, ctx)
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
	if !rsvp.CanSubmitRSVP(g) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "rsvp already completed"})
	}

	attendees := req.Attendees
	if status == model.RSVPAccepted {
		attendees = validAttendees(attendees)
		if len(attendees) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one attendee with a name is required"})
		}
		if len(attendees) > g.AllowedGuests {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "more attendees than the invitation allows"})
		}
	}

	if err := h.Guests.UpdateRSVP(ctx, g.ID, e.ID, status, len(attendees), strings.TrimSpace(req.Message),
		attendees, strings.TrimSpace(req.ArrivalLocation), strings.TrimSpace(req.ArrivalTime),
		strings.TrimSpace(req.DepartureLocation), strings.TrimSpace(req.DepartureTime)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rsvp failed"})
	}

	g, err = h.Guests.GetByIDAndEvent(ctx, g.ID, e.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}

	_ = queue_publisher.PublishRSVPSubmitted(ctx, queue.RSVPSubmittedEvent{
		EventID:        e.ID,
		EventName:      e.Name,
		GuestID:        g.ID,
		GuestName:      g.Name,
		Status:         string(g.Status),
		AttendingCount: g.AttendingCount,
		SubmittedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"guest": toGuestResp(g),
		"next":  rsvp.StateOf(g),
	})
}

// SubmitDeparture stores structured return-travel details. Only legal
// after an accepted RSVP; everything else is a conflict.
func (h *PublicHandler) SubmitDeparture(c echo.Context) error {
	gid, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req model.DepartureDetails
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.eventBySlug(c, ctx)
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
	if !rsvp.CanSubmitDeparture(g) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "departure details require an accepted rsvp"})
	}

	if err := h.Guests.UpdateDeparture(ctx, g.ID, e.ID, &req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save departure failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"next": rsvp.StateSuccess})
}

type documentReq struct {
	AttendeeIndex int    `json:"attendee_index"`
	Side          string `json:"side"` // front | back
	Data          string `json:"data"` // base64 image, with or without data: prefix
}

// UploadDocument stores one base64 ID image for an attendee and
// records its public URL on the guest's attendee list.
func (h *PublicHandler) UploadDocument(c echo.Context) error {
	gid, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req documentReq
	if err := c.Bind(&req); err != nil || req.Data == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image data required"})
	}
	side := strings.ToLower(strings.TrimSpace(req.Side))
	if side != "front" && side != "back" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "side must be front or back"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	e, err := h.eventBySlug(c, ctx)
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
	if req.AttendeeIndex < 0 || req.AttendeeIndex >= len(g.Attendees) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid attendee index"})
	}

	url, err := h.Store.SaveBase64(e.ID, side, req.Data)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyImage) || errors.Is(err, storage.ErrUnsupportedImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
	}

	if side == "front" {
		g.Attendees[req.AttendeeIndex].IDFront = url
	} else {
		g.Attendees[req.AttendeeIndex].IDBack = url
	}
	if err := h.Guests.UpdateAttendees(ctx, g.ID, e.ID, g.Attendees); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save attendee failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// validAttendees drops attendee rows without a usable name and
// normalizes the guest-type field.
func validAttendees(in []model.Attendee) []model.Attendee {
	out := make([]model.Attendee, 0, len(in))
	for _, a := range in {
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			continue
		}
		if a.GuestType != model.GuestTypeAdult && a.GuestType != model.GuestTypeChild {
			a.GuestType = model.GuestTypeAdult
		}
		out = append(out, a)
	}
	return out
}
