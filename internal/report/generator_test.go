package report

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// fakeFetcher serves canned images and records failures per URL.
type fakeFetcher struct {
	images map[string]*FetchedImage
	fail   map[string]bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*FetchedImage, error) {
	if f.fail[url] {
		return nil, errors.New("unreachable")
	}
	img, ok := f.images[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

func makeTestImage(t *testing.T, w, h int) *FetchedImage {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return &FetchedImage{Data: buf.Bytes(), Width: w, Height: h}
}

func TestFitImage(t *testing.T) {
	cases := []struct {
		name         string
		srcW, srcH   int
		wantW, wantH float64
	}{
		{"wide scales by width", 400, 100, 120, 30},
		{"tall rescales by height", 100, 400, 22.5, 90},
		{"landscape still too tall", 400, 300, 120, 90},
		{"degenerate falls back to box", 0, 0, 120, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := fitImage(tc.srcW, tc.srcH)
			if w != tc.wantW || h != tc.wantH {
				t.Fatalf("fitImage(%d,%d) = (%g,%g), want (%g,%g)",
					tc.srcW, tc.srcH, w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestBuildMultiPage(t *testing.T) {
	ff := &fakeFetcher{images: map[string]*FetchedImage{}, fail: map[string]bool{}}
	var attendees []model.Attendee
	for i := 0; i < 5; i++ {
		url := "http://img/" + string(rune('a'+i))
		ff.images[url] = makeTestImage(t, 400, 300) // fills the full 120x90 box
		attendees = append(attendees, model.Attendee{
			Name:    "Attendee",
			IDType:  "Passport",
			IDFront: url,
		})
	}
	guest := &model.Guest{
		Name:           "Jane Doe",
		Status:         model.RSVPAccepted,
		AttendingCount: 5,
		Attendees:      attendees,
	}

	g := NewGenerator(ff)
	pdf := g.render(context.Background(), "Summer Gala", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), guest)
	if pdf.Err() {
		t.Fatalf("render error: %v", pdf.Error())
	}
	if pages := pdf.PageCount(); pages < 2 {
		t.Fatalf("page count = %d, want at least 2", pages)
	}
}

func TestBuildSurvivesImageFailure(t *testing.T) {
	ff := &fakeFetcher{
		images: map[string]*FetchedImage{
			"http://img/back": makeTestImage(t, 200, 100),
			"http://img/next": makeTestImage(t, 200, 100),
		},
		fail: map[string]bool{"http://img/front": true},
	}
	guest := &model.Guest{
		Name:           "Jane Doe",
		Status:         model.RSVPAccepted,
		AttendingCount: 2,
		Attendees: []model.Attendee{
			{Name: "Jane", IDType: "Passport", IDFront: "http://img/front", IDBack: "http://img/back"},
			{Name: "Sam", IDType: "Voter ID", IDFront: "http://img/next"},
		},
	}

	g := NewGenerator(ff)
	pdf := g.render(context.Background(), "", time.Time{}, guest)
	if pdf.Err() {
		t.Fatalf("render error: %v", pdf.Error())
	}
	// The failed front image degrades to a placeholder; the back image
	// and the next attendee's image must still be embedded.
	if pdf.GetImageInfo("http://img/back") == nil {
		t.Fatal("back image should be embedded despite front failure")
	}
	if pdf.GetImageInfo("http://img/next") == nil {
		t.Fatal("subsequent attendee's image should be embedded")
	}

	out, err := g.Build(context.Background(), "", time.Time{}, guest)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Build returned an empty document")
	}
}

func TestHTTPFetcher(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 200))
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(pngBuf.Bytes())
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	got, err := f.Fetch(context.Background(), srv.URL+"/id.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Width != 320 || got.Height != 200 {
		t.Fatalf("dimensions = %dx%d, want 320x200", got.Width, got.Height)
	}
	if _, err := jpeg.Decode(bytes.NewReader(got.Data)); err != nil {
		t.Fatalf("re-encoded data is not valid JPEG: %v", err)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("Fetch of a missing image should fail")
	}
}
