package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/shapesketch/internal/config"
	"github.com/example/shapesketch/internal/ui"
)

func stubRunUI(t *testing.T) *ui.Controller {
	t.Helper()
	var got ui.Controller
	original := runUI
	runUI = func(ctrl ui.Controller, _ ...ui.Option) { got = ctrl }
	t.Cleanup(func() { runUI = original })
	return &got
}

type fakeStream struct {
	size image.Point
}

func (f *fakeStream) Read() (*image.RGBA, error) {
	return image.NewRGBA(image.Rectangle{Max: f.size}), nil
}
func (f *fakeStream) Close() error      { return nil }
func (f *fakeStream) Size() image.Point { return f.size }

func TestOpenRunScreenError(t *testing.T) {
	original := grabScreenFn
	sentinel := errors.New("boom")
	grabScreenFn = func() (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { grabScreenFn = original })

	cmd := &openCmd{screen: true}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestOpenRunLoadError(t *testing.T) {
	original := loadImageFn
	sentinel := errors.New("missing")
	loadImageFn = func(string) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { loadImageFn = original })

	cmd := &openCmd{file: "nope.png"}
	err := cmd.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to load image"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestOpenWithoutSourceIsUsageError(t *testing.T) {
	cmd, err := parseOpenCmd(nil, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var uerr *UsageError
	if err := cmd.Run(); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseOpenRejectsFileAndScreen(t *testing.T) {
	if _, err := parseOpenCmd([]string{"-file", "a.png", "-screen"}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunShowsImage(t *testing.T) {
	original := loadImageFn
	loadImageFn = func(string) (*image.RGBA, error) {
		img := image.NewRGBA(image.Rect(0, 0, 30, 20))
		img.Set(3, 4, color.RGBA{10, 20, 30, 255})
		return img, nil
	}
	t.Cleanup(func() { loadImageFn = original })
	got := stubRunUI(t)

	cmd, err := parseOpenCmd([]string{"pics/cat.png"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	ed, ok := (*got).(*ui.Editor)
	if !ok {
		t.Fatalf("expected editor, got %T", *got)
	}
	if !strings.Contains(ed.Title(), "cat.png") {
		t.Fatalf("title %q lacks file name", ed.Title())
	}
	view := ed.View()
	if view.Bounds().Dx() != 30 || view.Bounds().Dy() != 20 {
		t.Fatalf("unexpected view size %v", view.Bounds())
	}
	if c := view.RGBAAt(3, 4); c != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("picture not kept, got %v", c)
	}
}

func TestDrawFallsBackOnInvalidSettings(t *testing.T) {
	got := stubRunUI(t)

	cmd, err := parseDrawCmd([]string{"-width", "-5", "-background", "notacolour", "-color", "alsobad"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	ed, ok := (*got).(*ui.Editor)
	if !ok {
		t.Fatalf("expected editor, got %T", *got)
	}
	view := ed.View()
	if view.Bounds().Dx() != 800 || view.Bounds().Dy() != 800 {
		t.Fatalf("expected default size, got %v", view.Bounds())
	}
	if c := view.RGBAAt(400, 400); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected white background, got %v", c)
	}
}

func TestDrawApplyStroke(t *testing.T) {
	cfg := config.New()
	d := &drawCmd{colorSpec: "#102030", thickness: 7}
	d.applyStroke(cfg)
	if cfg.Draw.Thickness != 7 {
		t.Fatalf("thickness %d", cfg.Draw.Thickness)
	}
	if cfg.Draw.Color != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Fatalf("color %v", cfg.Draw.Color)
	}

	d = &drawCmd{colorSpec: "Auto"}
	d.applyStroke(cfg)
	if cfg.Draw.Color.A != 0 {
		t.Fatalf("auto should clear the colour, got %v", cfg.Draw.Color)
	}
}

func TestLiveRunCameraError(t *testing.T) {
	original := openCameraFn
	sentinel := errors.New("no device")
	openCameraFn = func(int) (stream, error) { return nil, sentinel }
	t.Cleanup(func() { openCameraFn = original })

	cmd := &liveCmd{device: 2, codec: "XVID"}
	err := cmd.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to open camera"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestLiveRunVideo(t *testing.T) {
	original := openVideoFn
	var opened string
	openVideoFn = func(path string) (stream, error) {
		opened = path
		return &fakeStream{size: image.Pt(64, 48)}, nil
	}
	t.Cleanup(func() { openVideoFn = original })
	got := stubRunUI(t)

	cmd, err := parseLiveCmd([]string{"-video", "clip.avi", "-record-dir", t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if opened != "clip.avi" {
		t.Fatalf("opened %q", opened)
	}
	l, ok := (*got).(*ui.Live)
	if !ok {
		t.Fatalf("expected live controller, got %T", *got)
	}
	if !strings.Contains(l.Title(), "clip.avi") {
		t.Fatalf("title %q", l.Title())
	}
	if l.Status() != "waiting for frames" {
		t.Fatalf("status %q", l.Status())
	}
}

func TestParseLiveRejectsCodec(t *testing.T) {
	if _, err := parseLiveCmd([]string{"-codec", "H264X"}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDetectArguments(t *testing.T) {
	var uerr *UsageError
	if _, err := parseDetectCmd(nil, nil); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseDetectCmd([]string{"-file", "a.png", "-camera"}, nil); err == nil {
		t.Fatalf("expected error for -file with -camera")
	}
	if _, err := parseDetectCmd([]string{"-camera", "-output", "o.png"}, nil); err == nil {
		t.Fatalf("expected error for -output with -camera")
	}
	d, err := parseDetectCmd([]string{"shapes.png"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.file != "shapes.png" {
		t.Fatalf("file %q", d.file)
	}
}

func TestDetectRunLoadError(t *testing.T) {
	original := loadImageFn
	sentinel := errors.New("unreadable")
	loadImageFn = func(string) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { loadImageFn = original })

	cmd := &detectCmd{file: "x.png"}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestDetectParamsFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Detect.MinArea = 42
	p := detectParams(cfg.Detect)
	if p.MinArea != 42 || p.Epsilon != cfg.Detect.Epsilon || p.MaxRadius != cfg.Detect.MaxRadius {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	c := &configCmd{}
	var buf bytes.Buffer
	if err := c.runPrint(&buf); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "[canvas]") {
		t.Fatalf("missing canvas section:\n%s", buf.String())
	}

	cfg := config.New()
	cfg.Canvas.Width = 321
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	if err := saveConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	loaded, err := config.Parse(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if loaded.Canvas.Width != 321 {
		t.Fatalf("width %d", loaded.Canvas.Width)
	}
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	r := &root{fs: flag.NewFlagSet("shapesketch", flag.ContinueOnError), program: "shapesketch"}
	err := r.Run([]string{"paint"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Commands:") {
		t.Fatalf("expected rendered help, got %q", err.Error())
	}
}

func TestUsageErrorListsKeys(t *testing.T) {
	d, err := parseDrawCmd(nil, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	help := (&UsageError{of: d}).Error()
	for _, want := range []string{"-width", "z: undo"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help lacks %q:\n%s", want, help)
		}
	}
}
