package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveBase64(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "http://localhost:8080/")

	url, err := s.SaveBase64(42, "Front", "data:image/png;base64,"+pngBase64(t))
	if err != nil {
		t.Fatalf("SaveBase64: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/42/front-") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	// The file must exist under the event's subdirectory.
	name := url[strings.LastIndexByte(url, '/')+1:]
	if _, err := os.Stat(filepath.Join(dir, "42", name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSaveBase64WithoutDataPrefix(t *testing.T) {
	s := NewStore(t.TempDir(), "http://x")
	if _, err := s.SaveBase64(1, "back", pngBase64(t)); err != nil {
		t.Fatalf("SaveBase64 without data prefix: %v", err)
	}
}

func TestSaveBase64Rejects(t *testing.T) {
	s := NewStore(t.TempDir(), "http://x")
	if _, err := s.SaveBase64(1, "front", "!!!not-base64!!!"); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("err = %v, want ErrEmptyImage", err)
	}
	text := base64.StdEncoding.EncodeToString([]byte("just some text, definitely no image"))
	if _, err := s.SaveBase64(1, "front", text); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("err = %v, want ErrUnsupportedImage", err)
	}
}
