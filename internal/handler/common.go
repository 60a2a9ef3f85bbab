package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types
	"strings" // strings provides trimming helpers
	"time"    // time parses event dates

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64: // jwt.MapClaims decodes numbers as float64
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getEmail extracts the email claim stored by the JWT middleware. Hotel
// handlers scope every query by it.
func getEmail(c echo.Context) (string, error) {
	if s, ok := c.Get("email").(string); ok && s != "" {
		return strings.ToLower(strings.TrimSpace(s)), nil
	}
	return "", errors.New("missing email in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseEventDate accepts the date formats clients actually send: a
// bare date or a full RFC 3339 timestamp.
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// eventResp is the JSON shape returned for events on the admin and
// hotel surfaces. InviteURL is derived, never stored.
type eventResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	InviteURL   string    `json:"invite_url"`
	HotelEmail  *string   `json:"assigned_hotel_email,omitempty"`
	HotelName   *string   `json:"assigned_hotel_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventResp(e *model.Event, baseURL string) eventResp {
	return eventResp{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Location:    e.Location,
		Description: e.Description,
		Slug:        e.Slug,
		InviteURL:   strings.TrimRight(baseURL, "/") + "/r/" + e.Slug,
		HotelEmail:  e.AssignedHotelEmail,
		HotelName:   e.AssignedHotelName,
		CreatedAt:   e.CreatedAt,
	}
}

// guestResp is the full guest shape for the admin and hotel surfaces.
// The public invite endpoints use slimmer shapes defined next to
// their handlers.
type guestResp struct {
	ID                uint64                  `json:"id"`
	EventID           uint64                  `json:"event_id"`
	Name              string                  `json:"name"`
	Email             *string                 `json:"email,omitempty"`
	Phone             *string                 `json:"phone,omitempty"`
	AllowedGuests     int                     `json:"allowed_guests"`
	Status            model.RSVPStatus        `json:"status"`
	AttendingCount    int                     `json:"attending_count"`
	Message           string                  `json:"message,omitempty"`
	ArrivalLocation   string                  `json:"arrival_location,omitempty"`
	ArrivalTime       string                  `json:"arrival_time,omitempty"`
	DepartureLocation string                  `json:"departure_location,omitempty"`
	DepartureTime     string                  `json:"departure_time,omitempty"`
	Attendees         []model.Attendee        `json:"attendees,omitempty"`
	Departure         *model.DepartureDetails `json:"departure,omitempty"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

func toGuestResp(g *model.Guest) guestResp {
	return guestResp{
		ID:                g.ID,
		EventID:           g.EventID,
		Name:              g.Name,
		Email:             g.Email,
		Phone:             g.Phone,
		AllowedGuests:     g.AllowedGuests,
		Status:            g.Status,
		AttendingCount:    g.AttendingCount,
		Message:           g.Message,
		ArrivalLocation:   g.ArrivalLocation,
		ArrivalTime:       g.ArrivalTime,
		DepartureLocation: g.DepartureLocation,
		DepartureTime:     g.DepartureTime,
		Attendees:         g.Attendees,
		Departure:         g.Departure,
		UpdatedAt:         g.UpdatedAt,
	}
}

func toGuestResps(guests []*model.Guest) []guestResp {
	out := make([]guestResp, 0, len(guests))
	for _, g := range guests {
		out = append(out, toGuestResp(g))
	}
	return out
}
