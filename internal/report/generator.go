// Package report renders a guest's RSVP and attendee ID documents as
// a printable multi-page PDF for the host or the assigned hotel.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// Layout constants, all in millimeters on an A4 portrait page.
const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginBottom = 20.0 // content never crosses pageHeight - marginBottom
	lineHeight   = 6.0
	maxImageW    = 120.0 // ID images are scaled into this box,
	maxImageH    = 90.0  // width-first, preserving aspect ratio
)

// Generator builds guest reports. Image failures degrade to inline
// placeholders; only PDF serialization itself can fail a build.
type Generator struct {
	fetch Fetcher
}

// NewGenerator returns a Generator that loads images via fetch.
func NewGenerator(fetch Fetcher) *Generator {
	return &Generator{fetch: fetch}
}

// Build renders the report and returns the PDF bytes. The event name
// and date appear in the header block when provided.
func (g *Generator) Build(ctx context.Context, eventName string, eventDate time.Time, guest *model.Guest) ([]byte, error) {
	pdf := g.render(ctx, eventName, eventDate, guest)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// render does the full layout. Split from Build so tests can inspect
// the page count directly.
func (g *Generator) render(ctx context.Context, eventName string, eventDate time.Time, guest *model.Guest) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, 0) // breaks are decided by ensureRoom
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title row: guest name left, event block right.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(100, 10, tr(guest.Name), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if eventName != "" {
		pdf.CellFormat(0, 5, tr(eventName), "", 2, "R", false, 0, "")
		if !eventDate.IsZero() {
			pdf.CellFormat(0, 5, eventDate.Format("2 Jan 2006"), "", 2, "R", false, 0, "")
		}
	}
	pdf.SetY(pdf.GetY() + 4)

	// Arrival/departure summary, right-aligned, only the fields the
	// guest filled in.
	for _, line := range travelSummary(guest) {
		pdf.CellFormat(0, 5, tr(line), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Contact and status lines.
	g.textLine(pdf, tr, "Email: "+strOrDash(guest.Email))
	g.textLine(pdf, tr, "Phone: "+strOrDash(guest.Phone))
	g.textLine(pdf, tr, "Status: "+string(guest.Status))
	g.textLine(pdf, tr, fmt.Sprintf("Total guests: %d", guest.AttendingCount))

	if msg := strings.TrimSpace(guest.Message); msg != "" {
		pdf.Ln(2)
		g.sectionHeading(pdf, tr, "Message")
		g.wrappedText(pdf, tr, msg)
	}

	if d := guest.Departure; d != nil && d.Applicable {
		pdf.Ln(2)
		g.sectionHeading(pdf, tr, "Departure Details")
		if d.Date != "" || d.Time != "" {
			g.textLine(pdf, tr, strings.TrimSpace(d.Date+" "+d.Time))
		}
		for _, t := range d.Travelers {
			line := t.Name
			if t.Mode != "" {
				line += " - " + t.Mode
			}
			if t.Station != "" {
				line += " from " + t.Station
			}
			if t.TicketRef != "" {
				line += " (ticket " + t.TicketRef + ")"
			}
			g.textLine(pdf, tr, line)
		}
		if d.Message != "" {
			g.wrappedText(pdf, tr, d.Message)
		}
	}

	for _, a := range guest.Attendees {
		pdf.Ln(3)
		heading := a.Name
		if a.IDType != "" {
			heading += " - " + a.IDType
		}
		g.sectionHeading(pdf, tr, heading)
		g.placeDocument(ctx, pdf, tr, "Front", a.IDFront)
		g.placeDocument(ctx, pdf, tr, "Back", a.IDBack)
	}
	return pdf
}

// ensureRoom starts a new page when the next block of the given
// height would cross the bottom margin. Returns true when it broke.
func (g *Generator) ensureRoom(pdf *gofpdf.Fpdf, need float64) bool {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+need > pageH-marginBottom {
		pdf.AddPage()
		return true
	}
	return false
}

func (g *Generator) textLine(pdf *gofpdf.Fpdf, tr func(string) string, s string) {
	g.ensureRoom(pdf, lineHeight)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, tr(s), "", 1, "L", false, 0, "")
}

func (g *Generator) sectionHeading(pdf *gofpdf.Fpdf, tr func(string) string, s string) {
	g.ensureRoom(pdf, lineHeight+2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineHeight+1, tr(s), "", 1, "L", false, 0, "")
}

// wrappedText word-wraps a free-text block to the printable width,
// breaking pages between lines.
func (g *Generator) wrappedText(pdf *gofpdf.Fpdf, tr func(string) string, s string) {
	pdf.SetFont("Helvetica", "", 11)
	pageW, _ := pdf.GetPageSize()
	width := pageW - 2*marginLeft
	lines := pdf.SplitText(tr(s), width)
	for _, line := range lines {
		g.ensureRoom(pdf, lineHeight)
		pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
}

// placeDocument prints the side label and the scaled ID image below
// it. A fetch or decode failure becomes an inline placeholder and the
// report continues. If the image cannot fit under the label on the
// current page, the generator breaks and reprints the label with a
// "(continued)" marker so the pairing stays readable.
func (g *Generator) placeDocument(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, label, url string) {
	if url == "" {
		return
	}
	img, err := g.fetch.Fetch(ctx, url)
	if err != nil {
		g.textLine(pdf, tr, label+":")
		g.textLine(pdf, tr, "[Error loading image]")
		return
	}
	w, h := fitImage(img.Width, img.Height)

	g.textLine(pdf, tr, label+":")
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-marginBottom {
		pdf.AddPage()
		g.textLine(pdf, tr, label+" (continued):")
	}
	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	if pdf.GetImageInfo(url) == nil {
		pdf.RegisterImageOptionsReader(url, opts, bytes.NewReader(img.Data))
	}
	y := pdf.GetY()
	pdf.ImageOptions(url, marginLeft, y, w, h, false, opts, 0, "")
	pdf.SetY(y + h + 2)
}

// fitImage scales source pixel dimensions into the max image box,
// preserving aspect ratio: scale by width first, and if the result is
// still too tall, scale by height instead.
func fitImage(srcW, srcH int) (w, h float64) {
	if srcW <= 0 || srcH <= 0 {
		return maxImageW, maxImageH
	}
	w = maxImageW
	h = float64(srcH) * maxImageW / float64(srcW)
	if h > maxImageH {
		h = maxImageH
		w = float64(srcW) * maxImageH / float64(srcH)
	}
	return w, h
}

func travelSummary(g *model.Guest) []string {
	var out []string
	if g.ArrivalLocation != "" || g.ArrivalTime != "" {
		out = append(out, strings.TrimSpace("Arrival: "+strings.TrimSpace(g.ArrivalLocation+" "+g.ArrivalTime)))
	}
	if g.DepartureLocation != "" || g.DepartureTime != "" {
		out = append(out, strings.TrimSpace("Departure: "+strings.TrimSpace(g.DepartureLocation+" "+g.DepartureTime)))
	}
	return out
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
