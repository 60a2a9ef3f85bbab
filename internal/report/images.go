package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	_ "image/gif" // register decoders for the formats phones upload
	_ "image/png"
)

// FetchedImage is a decoded ID document image re-encoded as JPEG for
// embedding. Width and Height are the source pixel dimensions used to
// compute the scaled placement box.
type FetchedImage struct {
	Data   []byte
	Width  int
	Height int
}

// Fetcher retrieves an image by its stored URL. The report generator
// treats any error as a per-image failure and keeps going.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedImage, error)
}

// jpegQuality is the re-encode quality for embedded images. ID photos
// must stay legible; 85 keeps text sharp without bloating the PDF.
const jpegQuality = 85

// maxImageBytes caps a single download; uploaded documents are
// resized client-side so anything larger is not a legitimate ID scan.
const maxImageBytes = 20 << 20

// HTTPFetcher fetches images over HTTP and normalizes them to JPEG.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded request timeout so
// one dead image host cannot stall a whole report.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch downloads, decodes and re-encodes one image. Non-200
// responses and undecodable bodies are returned as errors; the caller
// decides how to degrade.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("image decode: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &FetchedImage{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
