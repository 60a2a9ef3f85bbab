package roster

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// Export writes the guest list as CSV with a fixed column order:
// Name, Email, Phone, Allowed Guests, Status, Attending Count. When
// withDocs is true (the hotel-facing variant) a final Docs Uploaded
// column carries the number of attendees with at least one ID image.
// Nil email/phone export as empty cells.
func Export(w io.Writer, guests []*model.Guest, withDocs bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Name", "Email", "Phone", "Allowed Guests", "Status", "Attending Count"}
	if withDocs {
		header = append(header, "Docs Uploaded")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, g := range guests {
		rec := []string{
			g.Name,
			deref(g.Email),
			deref(g.Phone),
			strconv.Itoa(g.AllowedGuests),
			string(g.Status),
			strconv.Itoa(g.AttendingCount),
		}
		if withDocs {
			rec = append(rec, strconv.Itoa(g.DocumentedCount()))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
