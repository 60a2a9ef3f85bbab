package roster

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// ErrNoValidGuests is returned when a file parses cleanly but yields
// no importable rows (every name was empty). Nothing should be
// persisted in that case.
var ErrNoValidGuests = errors.New("no valid guests found in file")

// Accepted header spellings per logical field. These are matched
// trimmed and case-insensitive, so "Full Name", " EMAIL " and
// "Mobile" all resolve.
var (
	nameAliases    = AliasSet("name", "full name", "guest name")
	emailAliases   = AliasSet("email", "e-mail", "mail")
	phoneAliases   = AliasSet("phone", "mobile", "contact", "cell")
	allowedAliases = AliasSet("guests", "guest", "allowed", "count", "number of guests")
)

// Parse reads a CSV guest list and returns the guests to insert. The
// first record is treated as the header row. Rows whose resolved name
// is empty or whitespace are dropped without error; allowed_guests
// falls back to 1 when the column is absent or non-numeric, and floors
// at 1 otherwise, since an invitation always covers the named guest.
// All returned guests are pending. CSV syntax errors abort the whole
// parse; a file with zero usable rows yields ErrNoValidGuests.
func Parse(r io.Reader) ([]model.Guest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // hand-edited files often have ragged rows

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoValidGuests
		}
		return nil, err
	}

	var guests []model.Guest
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, 0, len(record))
		for i, v := range record {
			if i >= len(header) {
				break
			}
			row = append(row, Cell{Header: header[i], Value: v})
		}
		g, ok := mapGuest(row)
		if !ok {
			continue
		}
		guests = append(guests, g)
	}
	if len(guests) == 0 {
		return nil, ErrNoValidGuests
	}
	return guests, nil
}

// mapGuest resolves one row into a guest. ok is false when the row
// has no usable name.
func mapGuest(row Row) (model.Guest, bool) {
	name, _ := Lookup(row, nameAliases)
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Guest{}, false
	}
	g := model.Guest{
		Name:          name,
		AllowedGuests: 1,
		Status:        model.RSVPPending,
	}
	if v, ok := Lookup(row, emailAliases); ok {
		if v = strings.TrimSpace(v); v != "" {
			g.Email = &v
		}
	}
	if v, ok := Lookup(row, phoneAliases); ok {
		if v = strings.TrimSpace(v); v != "" {
			g.Phone = &v
		}
	}
	if v, ok := Lookup(row, allowedAliases); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			g.AllowedGuests = n
		}
	}
	return g, true
}
