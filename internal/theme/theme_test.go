package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesFields(t *testing.T) {
	src := "Name: solar\n// comment\nStatusBar: #102030\nStatusText: white\nUnknown: #000000\n"
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "solar" {
		t.Fatalf("name %q", th.Name)
	}
	if th.StatusBar != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Fatalf("status bar %v", th.StatusBar)
	}
	if th.StatusText != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("status text %v", th.StatusText)
	}
	if th.Backdrop != Default().Backdrop {
		t.Fatalf("unset key should keep default, got %v", th.Backdrop)
	}
}

func TestParseRejectsBadColour(t *testing.T) {
	if _, err := Parse(strings.NewReader("Backdrop: #12")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoaderLookup(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Backdrop: #010203\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("")
	if err != nil || th.Name != "default" {
		t.Fatalf("empty name: %v %v", th, err)
	}
	th, err = l.Load("Dark")
	if err != nil || th.Name != "dark" {
		t.Fatalf("builtin: %v %v", th, err)
	}
	th, err = l.Load("mine")
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if th.Backdrop != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("backdrop %v", th.Backdrop)
	}
	th, err = l.Load(filepath.Join(dir, "mine.theme"))
	if err != nil || th.Backdrop != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("path: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for missing theme")
	}
}

func TestNames(t *testing.T) {
	if got := strings.Join(Names(), ","); got != "dark,default" {
		t.Fatalf("names %q", got)
	}
}
