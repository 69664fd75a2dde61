// Package live composes camera frames with annotations, an optional region of
// interest and a display rotation, and feeds the result to a recorder.
package live

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/example/shapesketch/internal/canvas"
	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/record"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/source"
)

// ErrNoFrame is returned when recording is requested before any frame exists.
var ErrNoFrame = errors.New("no frame composed yet")

// Annotator owns the edit session for a video stream. Like the session it is
// driven from a single goroutine.
type Annotator struct {
	src  source.FrameSource
	rec  *record.Recorder
	sess *session.Session

	opts       []session.Option
	background color.RGBA
	roi        image.Rectangle
	turns      int
	last       *image.RGBA
	writeErr   string
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithSessionOptions forwards options to every session the annotator builds.
func WithSessionOptions(opts ...session.Option) Option {
	return func(a *Annotator) { a.opts = append(a.opts, opts...) }
}

// WithBackground sets the colour used when the session canvas is reset.
func WithBackground(c color.RGBA) Option { return func(a *Annotator) { a.background = c } }

// New returns an annotator reading from src. rec may be nil.
func New(src source.FrameSource, rec *record.Recorder, opts ...Option) *Annotator {
	a := &Annotator{
		src:        src,
		rec:        rec,
		background: color.RGBA{0, 0, 0, 255},
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Session returns the current edit session, or nil before the first frame.
func (a *Annotator) Session() *session.Session { return a.sess }

// Recorder returns the recorder the annotator writes to.
func (a *Annotator) Recorder() *record.Recorder { return a.rec }

// ROI returns the active region of interest in source frame coordinates.
func (a *Annotator) ROI() image.Rectangle { return a.roi }

// Turns returns the display rotation in clockwise quarter turns.
func (a *Annotator) Turns() int { return a.turns }

// Last returns the most recently composed frame.
func (a *Annotator) Last() *image.RGBA { return a.last }

// Next reads one frame from the source and composes it. End of stream is
// reported as io.EOF.
func (a *Annotator) Next() (*image.RGBA, error) {
	frame, err := a.src.Read()
	if err != nil {
		return nil, err
	}
	return a.Compose(frame)
}

// Compose applies the region of interest, replays the annotations over frame,
// rotates the result for display and writes it to the recorder.
func (a *Annotator) Compose(frame *image.RGBA) (*image.RGBA, error) {
	if frame == nil || frame.Rect.Empty() {
		return nil, fmt.Errorf("compose: empty frame")
	}
	if !a.roi.Empty() {
		r := a.roi.Intersect(frame.Rect)
		if r.Empty() {
			log.Printf("region %v outside frame %v, clearing", a.roi, frame.Rect)
			a.roi = image.Rectangle{}
		} else {
			frame = raster.Crop(frame, r)
		}
	}
	frame = raster.Clone(frame)
	if err := a.ensureSession(frame.Rect.Size()); err != nil {
		return nil, err
	}
	a.sess.LoadFrame(frame)
	out := a.sess.View()
	for i := 0; i < a.turns; i++ {
		out = raster.RotateQuarter(out, true)
	}
	a.last = out
	a.write(out)
	return out, nil
}

func (a *Annotator) write(frame *image.RGBA) {
	if a.rec == nil || a.rec.State() != record.Recording {
		a.writeErr = ""
		return
	}
	if err := a.rec.Write(frame); err != nil {
		if msg := err.Error(); msg != a.writeErr {
			log.Printf("record frame: %v", err)
			a.writeErr = msg
		}
		return
	}
	a.writeErr = ""
}

// ensureSession builds a session sized to the frame, carrying shapes and mode
// over from the previous one when the size changed.
func (a *Annotator) ensureSession(size image.Point) error {
	if a.sess != nil && a.sess.Size() == size {
		return nil
	}
	c, err := canvas.New(size.X, size.Y, a.background)
	if err != nil {
		return fmt.Errorf("session canvas: %w", err)
	}
	opts := append([]session.Option{}, a.opts...)
	opts = append(opts, session.WithCropHandler(a.cropToROI))
	mode := session.ModeNone
	if a.sess != nil {
		opts = append(opts, session.WithShapes(a.sess.Shapes()))
		mode = a.sess.Mode()
	}
	a.sess = session.New(c, opts...)
	a.sess.SetMode(mode)
	return nil
}

// cropToROI narrows the region of interest to r, which is relative to the
// frame the session currently shows.
func (a *Annotator) cropToROI(r image.Rectangle, _ *image.RGBA) {
	a.SetROI(r.Add(a.roi.Min))
}

// SetROI restricts subsequent frames to r, in source frame coordinates.
func (a *Annotator) SetROI(r image.Rectangle) {
	a.roi = r.Canon()
	log.Printf("region of interest %v", a.roi)
}

// ClearROI restores full frames.
func (a *Annotator) ClearROI() { a.roi = image.Rectangle{} }

// Rotate accumulates a display rotation of +90 or -90 degrees.
func (a *Annotator) Rotate(angle int) bool {
	switch angle {
	case 90:
		a.turns = (a.turns + 1) % 4
	case -90:
		a.turns = (a.turns + 3) % 4
	default:
		return false
	}
	return true
}

// Pointer maps a point on the rotated display back onto the session canvas
// and forwards the event.
func (a *Annotator) Pointer(kind session.PointerKind, p image.Point) {
	if a.sess == nil {
		return
	}
	a.sess.Pointer(kind, a.canvasPoint(p))
}

func (a *Annotator) canvasPoint(p image.Point) image.Point {
	size := a.sess.Size()
	w, h := size.X, size.Y
	switch a.turns {
	case 1:
		return image.Pt(p.Y, h-1-p.X)
	case 2:
		return image.Pt(w-1-p.X, h-1-p.Y)
	case 3:
		return image.Pt(w-1-p.Y, p.X)
	}
	return p
}

// StartRecording opens the recorder at the size of the last composed frame.
func (a *Annotator) StartRecording() error {
	if a.rec == nil {
		return errors.New("no recorder configured")
	}
	if a.last == nil {
		return ErrNoFrame
	}
	b := a.last.Bounds()
	return a.rec.Start(b.Dx(), b.Dy())
}

// Close stops any recording in progress and releases the source.
func (a *Annotator) Close() error {
	var errs []error
	if a.rec != nil {
		errs = append(errs, a.rec.Stop())
	}
	if a.src != nil {
		errs = append(errs, a.src.Close())
	}
	return errors.Join(errs...)
}

// Pump reads frames from src and hands each to deliver until the stream
// ends, a read fails or ctx is cancelled. A failed read is treated as the end
// of the stream.
func Pump(ctx context.Context, src source.FrameSource, deliver func(*image.RGBA)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		frame, err := src.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("read frame: %v", err)
			}
			return nil
		}
		deliver(frame)
	}
}
