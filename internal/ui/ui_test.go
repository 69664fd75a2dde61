package ui

import (
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/example/shapesketch/internal/canvas"
	"github.com/example/shapesketch/internal/live"
	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/theme"
)

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		r    rune
		want Command
	}{
		{'q', CmdQuit},
		{'c', CmdCircle},
		{'R', CmdRectangle},
		{'p', CmdPolygon},
		{'s', CmdFinalize},
		{'x', CmdCrop},
		{'e', CmdErase},
		{'a', CmdRotateLeft},
		{'d', CmdRotateRight},
		{'z', CmdUndo},
		{'y', CmdRedo},
		{'1', CmdRecordStart},
		{'2', CmdRecordPause},
		{'3', CmdRecordResume},
		{'4', CmdRecordStop},
	}
	for _, tt := range tests {
		got, ok := KeyCommand(tt.r)
		if !ok || got != tt.want {
			t.Errorf("KeyCommand(%q) = %v, %v; want %v", tt.r, got, ok, tt.want)
		}
	}
	if _, ok := KeyCommand('k'); ok {
		t.Errorf("k should be unbound")
	}
	if len(KeyHelp()) != len(tests) {
		t.Errorf("help lists %d bindings", len(KeyHelp()))
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	lay := fitLayout(image.Pt(200, 100), 400, 200+statusHeight)
	if lay.zoom != 2 || lay.dst != image.Rect(0, 0, 400, 200) {
		t.Fatalf("layout = %+v", lay)
	}
	p, ok := lay.toCanvas(image.Pt(101, 51))
	if !ok || p != image.Pt(50, 25) {
		t.Fatalf("toCanvas = %v %v", p, ok)
	}
	p, ok = lay.toCanvas(image.Pt(500, 210))
	if ok || p != image.Pt(199, 99) {
		t.Fatalf("outside point = %v %v", p, ok)
	}
	if _, ok := (layout{}).toCanvas(image.Pt(1, 1)); ok {
		t.Fatalf("empty layout accepted a point")
	}
}

func newEditor(t *testing.T) *Editor {
	t.Helper()
	c, err := canvas.New(80, 60, color.RGBA{255, 255, 255, 255})
	if err != nil {
		t.Fatalf("canvas: %v", err)
	}
	return NewEditor("test", session.New(c))
}

func TestDrawStatusUsesTheme(t *testing.T) {
	th := theme.Dark()
	dst := image.NewRGBA(image.Rect(0, 0, 50, 40))
	drawStatus(dst, th, "", 50, 40)
	if c := dst.RGBAAt(49, 39); c != th.StatusBar {
		t.Fatalf("status bar pixel %v, want %v", c, th.StatusBar)
	}
	if c := dst.RGBAAt(0, 40-statusHeight-1); c == th.StatusBar {
		t.Fatalf("status bar drawn above its band")
	}
}

func TestEditorCommands(t *testing.T) {
	e := newEditor(t)
	if !e.Command(CmdCircle) || e.Session().Mode() != session.ModeCircle {
		t.Fatalf("circle mode not set")
	}
	e.Pointer(session.PointerDown, image.Pt(40, 30))
	e.Pointer(session.PointerUp, image.Pt(50, 30))
	if !strings.Contains(e.Status(), "shapes: 1") {
		t.Fatalf("status = %q", e.Status())
	}
	e.Command(CmdUndo)
	if e.Session().ShapeCount() != 0 {
		t.Fatalf("undo ignored")
	}
	e.Command(CmdRedo)
	if e.Session().ShapeCount() != 1 {
		t.Fatalf("redo ignored")
	}
	if !e.Command(CmdRotateRight) || e.View().Bounds().Size() != image.Pt(60, 80) {
		t.Fatalf("rotate: %v", e.View().Bounds())
	}
	if e.Command(CmdRecordStart) {
		t.Fatalf("editor handled a recording command")
	}
}

type stubSource struct{ n int }

func (s *stubSource) Read() (*image.RGBA, error) {
	if s.n == 0 {
		return nil, io.EOF
	}
	s.n--
	return raster.New(32, 24, color.RGBA{10, 10, 10, 255}), nil
}

func (s *stubSource) Close() error { return nil }

func TestLiveCommands(t *testing.T) {
	ann := live.New(&stubSource{n: 3}, nil)
	l := NewLive("live", ann)
	if l.Status() != "waiting for frames" || l.Command(CmdCircle) {
		t.Fatalf("commands before the first frame must be ignored")
	}
	frame, _ := (&stubSource{n: 1}).Read()
	l.Frame(frame)
	if l.View() == nil {
		t.Fatalf("no view after a frame")
	}
	l.Command(CmdCrop)
	l.Pointer(session.PointerDown, image.Pt(4, 4))
	l.Pointer(session.PointerDown, image.Pt(20, 16))
	if ann.ROI().Empty() {
		t.Fatalf("crop did not set a region")
	}
	l.Command(CmdCrop)
	if !ann.ROI().Empty() {
		t.Fatalf("second crop press did not clear the region")
	}
	l.Command(CmdRotateLeft)
	if !strings.Contains(l.Status(), "rotation: 270") {
		t.Fatalf("status = %q", l.Status())
	}
	if !l.Command(CmdRecordStart) {
		t.Fatalf("record start not handled")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestViewerTransform(t *testing.T) {
	v := NewViewer("detect", nil, func(img *image.RGBA) (*image.RGBA, string) {
		return raster.Clone(img), "2 shapes"
	})
	v.Frame(raster.New(4, 4, color.RGBA{0, 0, 0, 255}))
	if v.View() == nil || v.Status() != "2 shapes" {
		t.Fatalf("viewer did not apply its transform")
	}
	if v.Command(CmdCircle) {
		t.Fatalf("viewer accepted an edit command")
	}
}

func TestExporterQueuesAndCopies(t *testing.T) {
	e := NewExporter(true, nil)
	var copied int
	e.write = func(image.Image) error { copied++; return nil }
	img := raster.New(3, 3, color.RGBA{1, 2, 3, 255})
	e.Crop(image.Rect(0, 0, 3, 3), img)
	if copied != 1 {
		t.Fatalf("copied %d times", copied)
	}
	select {
	case got := <-e.Crops():
		if got != img {
			t.Fatalf("queued a different image")
		}
	default:
		t.Fatalf("crop not queued")
	}

	e.write = func(image.Image) error { return errors.New("no display") }
	for i := 0; i < cropQueue+2; i++ {
		e.Crop(image.Rect(0, 0, 3, 3), img)
	}
	if len(e.Crops()) != cropQueue {
		t.Fatalf("queue len = %d", len(e.Crops()))
	}
}
