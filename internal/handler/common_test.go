package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

func TestParseEventDate(t *testing.T) {
	d, err := parseEventDate("2026-10-02")
	if err != nil {
		t.Fatalf("bare date: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.October || d.Day() != 2 {
		t.Fatalf("parsed %v", d)
	}
	if _, err := parseEventDate("2026-10-02T18:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := parseEventDate("next friday"); err == nil {
		t.Fatal("nonsense date should fail")
	}
}

func TestValidAttendees(t *testing.T) {
	in := []model.Attendee{
		{Name: "  Jane  ", GuestType: "Adult"},
		{Name: ""},
		{Name: "   "},
		{Name: "Kid", GuestType: "something else"},
	}
	out := validAttendees(in)
	if len(out) != 2 {
		t.Fatalf("got %d attendees, want 2", len(out))
	}
	if out[0].Name != "Jane" {
		t.Fatalf("name not trimmed: %q", out[0].Name)
	}
	if out[1].GuestType != model.GuestTypeAdult {
		t.Fatalf("unknown guest type should normalize to Adult, got %q", out[1].GuestType)
	}
}
