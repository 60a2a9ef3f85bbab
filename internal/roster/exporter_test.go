package roster

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

func TestExport(t *testing.T) {
	email := "b@x.com"
	guests := []*model.Guest{
		{Name: "Bob", Email: &email, AllowedGuests: 2, Status: model.RSVPAccepted, AttendingCount: 2},
	}

	var buf bytes.Buffer
	if err := Export(&buf, guests, false); err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	wantHeader := []string{"Name", "Email", "Phone", "Allowed Guests", "Status", "Attending Count"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header = %v, want %v", rows[0], wantHeader)
	}
	wantRow := []string{"Bob", "b@x.com", "", "2", "accepted", "2"}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Fatalf("row = %v, want %v", rows[1], wantRow)
	}
}

func TestExportDocsUploaded(t *testing.T) {
	guests := []*model.Guest{
		{
			Name: "Asha", AllowedGuests: 3, Status: model.RSVPAccepted, AttendingCount: 3,
			Attendees: []model.Attendee{
				{Name: "Asha", IDFront: "u1"},
				{Name: "Ravi", IDBack: "u2"},
				{Name: "Kid"},
			},
		},
		{Name: "Noor", AllowedGuests: 1, Status: model.RSVPPending},
	}

	var buf bytes.Buffer
	if err := Export(&buf, guests, true); err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if got := rows[0][len(rows[0])-1]; got != "Docs Uploaded" {
		t.Fatalf("last header = %q, want Docs Uploaded", got)
	}
	if got := rows[1][6]; got != "2" {
		t.Fatalf("Asha docs uploaded = %q, want 2", got)
	}
	if got := rows[2][6]; got != "0" {
		t.Fatalf("Noor docs uploaded = %q, want 0", got)
	}
}
