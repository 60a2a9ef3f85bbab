package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
	"github.com/iliyamo/guestlist-rsvp/internal/queue"
	"github.com/iliyamo/guestlist-rsvp/internal/repository"
	"github.com/iliyamo/guestlist-rsvp/internal/roster"
	queue_publisher "github.com/iliyamo/guestlist-rsvp/internal/service"
	"github.com/iliyamo/guestlist-rsvp/internal/utils"
)

// maxImportBytes caps the uploaded CSV size. Guest lists are small;
// anything past this is a mistake or abuse.
const maxImportBytes = 5 << 20

// ownedEvent loads an event and enforces ownership, translating the
// not-found case to a 404 response. Returns nil when a response was
// already written.
func (h *AdminHandler) ownedEvent(c echo.Context, ctx context.Context, uid uint64) (*model.Event, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return e, nil
}

// ListGuests returns the event's guest list, optionally filtered by a
// case-insensitive name substring via ?q=.
func (h *AdminHandler) ListGuests(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.ownedEvent(c, ctx, uid)
	if e == nil {
		return err
	}
	guests, err := h.Guests.ListByEvent(ctx, e.ID, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"guests": toGuestResps(guests)})
}

type guestReq struct {
	Name          string  `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	AllowedGuests int     `json:"allowed_guests"`
}

// AddGuest creates one guest manually.
func (h *AdminHandler) AddGuest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.AllowedGuests < 1 {
		req.AllowedGuests = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.ownedEvent(c, ctx, uid)
	if e == nil {
		return err
	}
	g := &model.Guest{
		EventID:       e.ID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		AllowedGuests: req.AllowedGuests,
	}
	if err := h.Guests.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	return c.JSON(http.StatusCreated, toGuestResp(g))
}

// UpdateGuest edits the invitation-level fields of one guest.
func (h *AdminHandler) UpdateGuest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gid, err := pathID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.AllowedGuests < 1 {
		req.AllowedGuests = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.UpdateByIDAndOwner(ctx, gid, uid, req.Name, req.Email, req.Phone, req.AllowedGuests); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update guest failed"})
	}
	g, err := h.Guests.GetByIDAndOwner(ctx, gid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	return c.JSON(http.StatusOK, toGuestResp(g))
}

// DeleteGuest removes one guest from the list.
func (h *AdminHandler) DeleteGuest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gid, err := pathID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.DeleteByIDAndOwner(ctx, gid, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete guest failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportGuests ingests a CSV guest list from a multipart upload. The
// import is all-or-nothing: a parse error or an empty usable batch
// persists nothing. On success an activity event is published; a dead
// broker never fails the import.
func (h *AdminHandler) ImportGuests(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	if fileHeader.Size > maxImportBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read file"})
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	e, err := h.ownedEvent(c, ctx, uid)
	if e == nil {
		return err
	}

	guests, err := roster.Parse(f)
	if err != nil {
		if errors.Is(err, roster.ErrNoValidGuests) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no valid guests found in file"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("parse failed: %v", err)})
	}
	if err := h.Guests.CreateBulk(ctx, e.ID, guests); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	_ = queue_publisher.PublishGuestsImported(ctx, queue.GuestsImportedEvent{
		EventID:    e.ID,
		EventName:  e.Name,
		OwnerID:    uid,
		Count:      len(guests),
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"imported": len(guests)})
}

// ExportGuests streams the guest list as a CSV download.
func (h *AdminHandler) ExportGuests(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	e, err := h.ownedEvent(c, ctx, uid)
	if e == nil {
		return err
	}
	guests, err := h.Guests.ListByEvent(ctx, e.ID, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	var buf bytes.Buffer
	if err := roster.Export(&buf, guests, false); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="guests.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// GuestReport renders one guest's document report as a PDF download.
// Report generation fetches each ID image, so it gets a longer
// timeout than the usual handler budget.
func (h *AdminHandler) GuestReport(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gid, err := pathID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	e, err := h.ownedEvent(c, ctx, uid)
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
