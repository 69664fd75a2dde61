package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")
	src := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	src.Set(5, 3, color.NRGBA{10, 20, 30, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.RGBAAt(5, 3) != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("pixel = %v", img.RGBAAt(5, 3))
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil || !strings.Contains(err.Error(), "open image") {
		t.Fatalf("expected open error, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadImage(path); err == nil || !strings.Contains(err.Error(), "decode image") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
