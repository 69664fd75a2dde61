package live

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/record"
	"github.com/example/shapesketch/internal/session"
)

var grey = color.RGBA{90, 90, 90, 255}

type fakeSource struct {
	frames []*image.RGBA
	err    error
	closed bool
}

func (f *fakeSource) Read() (*image.RGBA, error) {
	if len(f.frames) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	fr := f.frames[0]
	f.frames = f.frames[1:]
	return fr, nil
}

func (f *fakeSource) Close() error { f.closed = true; return nil }

func frames(n, w, h int) []*image.RGBA {
	out := make([]*image.RGBA, n)
	for i := range out {
		out[i] = raster.New(w, h, grey)
	}
	return out
}

type countingSink struct{ frames int }

func (c *countingSink) Write(*image.RGBA) error { c.frames++; return nil }
func (c *countingSink) Close() error            { return nil }

func newRecorder(t *testing.T) (*record.Recorder, *countingSink) {
	t.Helper()
	sink := &countingSink{}
	rec := record.New(
		record.WithDir(t.TempDir()),
		record.WithOpener(func(string, float64, int, int) (record.Sink, error) { return sink, nil }),
		record.WithClock(func() time.Time { return time.Unix(0, 0) }),
	)
	return rec, sink
}

func TestShapesPersistAcrossFrames(t *testing.T) {
	src := &fakeSource{frames: frames(3, 40, 30)}
	a := New(src, nil, WithSessionOptions(session.WithColor(color.RGBA{255, 0, 0, 255})))

	if _, err := a.Next(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	s := a.Session()
	s.SetMode(session.ModeRectangle)
	s.Pointer(session.PointerDown, image.Pt(5, 5))
	s.Pointer(session.PointerUp, image.Pt(20, 20))

	for i := 0; i < 2; i++ {
		out, err := a.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if out.RGBAAt(5, 10) != (color.RGBA{255, 0, 0, 255}) {
			t.Fatalf("frame %d lost the annotation", i)
		}
		if out.RGBAAt(30, 25) != grey {
			t.Fatalf("frame %d background not taken from the camera", i)
		}
	}
	if _, err := a.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestUndoInLiveMode(t *testing.T) {
	a := New(&fakeSource{frames: frames(2, 20, 20)}, nil)
	a.Next()
	s := a.Session()
	s.SetMode(session.ModeCircle)
	s.Pointer(session.PointerDown, image.Pt(10, 10))
	s.Pointer(session.PointerUp, image.Pt(14, 10))
	if !s.Undo() {
		t.Fatalf("undo failed")
	}
	out, _ := a.Next()
	if !raster.Equal(out, raster.New(20, 20, grey)) {
		t.Fatalf("undone shape still replayed")
	}
}

func TestCropSetsROI(t *testing.T) {
	a := New(&fakeSource{frames: frames(3, 100, 80)}, nil)
	a.Next()
	s := a.Session()
	s.SetMode(session.ModeCrop)
	s.Pointer(session.PointerDown, image.Pt(60, 50))
	s.Pointer(session.PointerDown, image.Pt(10, 20))
	if a.ROI() != image.Rect(10, 20, 60, 50) {
		t.Fatalf("roi = %v", a.ROI())
	}

	out, err := a.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 50, 30) {
		t.Fatalf("frame bounds = %v", out.Bounds())
	}
	if a.Session().Size() != image.Pt(50, 30) || a.Session().Mode() != session.ModeCrop {
		t.Fatalf("session not rebuilt for the cropped frame")
	}

	a.ClearROI()
	out, _ = a.Next()
	if out.Bounds().Size() != image.Pt(100, 80) {
		t.Fatalf("clear roi: %v", out.Bounds())
	}
}

func TestRotateAndPointerMapping(t *testing.T) {
	a := New(&fakeSource{frames: frames(2, 40, 20)}, nil)
	a.Next()
	if a.Rotate(45) {
		t.Fatalf("45 degrees accepted")
	}
	a.Session().SetMode(session.ModeRectangle)
	a.Rotate(90)
	if m := a.Session().Mode(); m != session.ModeRectangle {
		t.Fatalf("rotate changed the mode to %v", m)
	}
	out, _ := a.Next()
	if out.Bounds().Size() != image.Pt(20, 40) {
		t.Fatalf("rotated size = %v", out.Bounds().Size())
	}
	// display (0,0) after a clockwise turn shows canvas (0, h-1)
	if got := a.canvasPoint(image.Pt(0, 0)); got != image.Pt(0, 19) {
		t.Fatalf("canvasPoint = %v", got)
	}
	a.Rotate(-90)
	a.Rotate(-90)
	if a.Turns() != 3 {
		t.Fatalf("turns = %d", a.Turns())
	}
	if got := a.canvasPoint(image.Pt(0, 0)); got != image.Pt(39, 0) {
		t.Fatalf("canvasPoint = %v", got)
	}
}

func TestRecordingReceivesComposedFrames(t *testing.T) {
	rec, sink := newRecorder(t)
	a := New(&fakeSource{frames: frames(4, 16, 16)}, rec)
	if err := a.StartRecording(); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("start before first frame: %v", err)
	}
	a.Next()
	if err := a.StartRecording(); err != nil {
		t.Fatalf("start: %v", err)
	}
	a.Next()
	rec.Pause()
	a.Next()
	rec.Resume()
	a.Next()
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if sink.frames != 2 {
		t.Fatalf("recorded %d frames", sink.frames)
	}
}

func TestPumpStopsOnReadError(t *testing.T) {
	src := &fakeSource{frames: frames(2, 4, 4), err: errors.New("camera unplugged")}
	var got int
	if err := Pump(context.Background(), src, func(*image.RGBA) { got++ }); err != nil {
		t.Fatalf("pump: %v", err)
	}
	if got != 2 {
		t.Fatalf("delivered %d frames", got)
	}
}

func TestPumpHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Pump(ctx, &fakeSource{frames: frames(1, 4, 4)}, func(*image.RGBA) {
		t.Fatalf("delivered after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
