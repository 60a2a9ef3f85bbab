package roster

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupCaseAndWhitespace(t *testing.T) {
	row := Row{
		{Header: "  Full Name ", Value: "Jane"},
		{Header: "EMAIL", Value: "jane@example.com"},
	}
	if v, ok := Lookup(row, nameAliases); !ok || v != "Jane" {
		t.Fatalf("name lookup = (%q, %v), want (Jane, true)", v, ok)
	}
	if v, ok := Lookup(row, emailAliases); !ok || v != "jane@example.com" {
		t.Fatalf("email lookup = (%q, %v), want (jane@example.com, true)", v, ok)
	}
	if _, ok := Lookup(row, phoneAliases); ok {
		t.Fatal("phone lookup should miss when no alias is present")
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	// Both columns match the name alias set; the leftmost one must win.
	row := Row{
		{Header: "guest name", Value: "From Guest Name"},
		{Header: "name", Value: "From Name"},
	}
	if v, _ := Lookup(row, nameAliases); v != "From Guest Name" {
		t.Fatalf("lookup = %q, want the leftmost matching column", v)
	}

	reversed := Row{row[1], row[0]}
	if v, _ := Lookup(reversed, nameAliases); v != "From Name" {
		t.Fatalf("lookup = %q, want the leftmost matching column after reorder", v)
	}
}

func TestParseDropsEmptyNames(t *testing.T) {
	in := "Name,Email\nAmy,amy@x.com\n,skip@x.com\n   ,also@x.com\n"
	guests, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Amy" {
		t.Fatalf("got %d guests, want exactly Amy", len(guests))
	}
}

func TestParseAllEmptyNames(t *testing.T) {
	in := "Name,Email\n,a@x.com\n  ,b@x.com\n"
	if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrNoValidGuests) {
		t.Fatalf("Parse err = %v, want ErrNoValidGuests", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrNoValidGuests) {
		t.Fatalf("Parse err = %v, want ErrNoValidGuests", err)
	}
}

func TestParseAllowedGuestsFallback(t *testing.T) {
	in := "Name,Guests\nBob,abc\nCara,3\nDev,-2\nEla,0\n"
	guests, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// An invitation always covers the named guest, so zero and negative
	// counts floor at 1 alongside the non-numeric fallback.
	want := map[string]int{"Bob": 1, "Cara": 3, "Dev": 1, "Ela": 1}
	for _, g := range guests {
		if g.AllowedGuests != want[g.Name] {
			t.Errorf("%s: allowed_guests = %d, want %d", g.Name, g.AllowedGuests, want[g.Name])
		}
	}
}

func TestParseAlternateHeaders(t *testing.T) {
	in := "Guest Name,E-Mail,Mobile,Number of Guests\nRiya,riya@x.com,555-0101,4\n"
	guests, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g := guests[0]
	if g.Name != "Riya" || g.Email == nil || *g.Email != "riya@x.com" ||
		g.Phone == nil || *g.Phone != "555-0101" || g.AllowedGuests != 4 {
		t.Fatalf("unexpected guest: %+v", g)
	}
	if g.Status != "pending" {
		t.Fatalf("status = %q, want pending", g.Status)
	}
}

func TestParseRaggedRows(t *testing.T) {
	// Rows shorter than the header must not error.
	in := "Name,Email,Phone\nSolo\n"
	guests, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(guests) != 1 || guests[0].Email != nil {
		t.Fatalf("unexpected guests: %+v", guests)
	}
}

func TestParseMalformedCSV(t *testing.T) {
	in := "Name,Email\n\"unterminated,a@x.com\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("Parse should surface CSV syntax errors")
	}
}
