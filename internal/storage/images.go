// Package storage persists uploaded ID document images on local disk
// and hands back stable public URLs. The files are served by the HTTP
// layer as static content under /uploads.
package storage

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedImage is returned when the decoded payload is not a
// JPEG or PNG image.
var ErrUnsupportedImage = errors.New("unsupported image format")

// ErrEmptyImage is returned for an empty or undecodable payload.
var ErrEmptyImage = errors.New("empty image payload")

// Store writes images under Dir, one subdirectory per event, and
// builds public URLs rooted at BaseURL.
type Store struct {
	Dir     string
	BaseURL string
}

// NewStore returns a Store. BaseURL should be the externally visible
// origin (scheme://host[:port]) without a trailing slash.
func NewStore(dir, baseURL string) *Store {
	return &Store{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SaveBase64 decodes a base64 image (with or without a data: URI
// prefix), stores it under the event's upload directory and returns
// the public URL. The filename embeds the label (e.g. "front",
// "back") plus a random component so repeat uploads never clash.
func (s *Store) SaveBase64(eventID uint64, label, data string) (string, error) {
	if i := strings.IndexByte(data, ','); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil || len(raw) == 0 {
		return "", ErrEmptyImage
	}

	var ext string
	switch http.DetectContentType(raw) {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		return "", ErrUnsupportedImage
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s%s", sanitizeLabel(label), hex.EncodeToString(buf), ext)

	dir := filepath.Join(s.Dir, fmt.Sprintf("%d", eventID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/uploads/%d/%s", s.BaseURL, eventID, name), nil
}

// sanitizeLabel keeps filenames shell- and URL-safe regardless of
// what the client sent as the side label.
func sanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "doc"
	}
	return b.String()
}
