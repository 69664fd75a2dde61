// Package ui hosts editing sessions in a shiny window and maps keyboard and
// mouse input onto session operations.
package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/example/shapesketch/internal/live"
	"github.com/example/shapesketch/internal/session"
)

// Controller is what a window drives. All methods are called from the
// window's event goroutine.
type Controller interface {
	Title() string
	// View returns the image to display, or nil when nothing is ready.
	View() *image.RGBA
	Status() string
	Pointer(kind session.PointerKind, p image.Point)
	// Command applies cmd and reports whether it was handled.
	Command(cmd Command) bool
}

// FrameSink is implemented by controllers fed from a frame source.
type FrameSink interface {
	Frame(frame *image.RGBA)
}

func modeFor(cmd Command) (session.Mode, bool) {
	switch cmd {
	case CmdCircle:
		return session.ModeCircle, true
	case CmdRectangle:
		return session.ModeRectangle, true
	case CmdPolygon:
		return session.ModePolygon, true
	case CmdErase:
		return session.ModeErase, true
	case CmdCrop:
		return session.ModeCrop, true
	}
	return session.ModeNone, false
}

// applySessionCommand handles the commands both editors share.
func applySessionCommand(s *session.Session, cmd Command) bool {
	if m, ok := modeFor(cmd); ok {
		s.SetMode(m)
		return true
	}
	switch cmd {
	case CmdFinalize:
		s.FinalizePolygon()
		return true
	case CmdUndo:
		if !s.Undo() {
			log.Printf("nothing to undo")
		}
		return true
	case CmdRedo:
		if !s.Redo() {
			log.Printf("nothing to redo")
		}
		return true
	}
	return false
}

// Editor edits a still image.
type Editor struct {
	title string
	sess  *session.Session
}

// NewEditor returns a controller for sess.
func NewEditor(title string, sess *session.Session) *Editor {
	return &Editor{title: title, sess: sess}
}

func (e *Editor) Title() string             { return e.title }
func (e *Editor) View() *image.RGBA         { return e.sess.View() }
func (e *Editor) Session() *session.Session { return e.sess }

func (e *Editor) Pointer(k session.PointerKind, p image.Point) {
	e.sess.Pointer(k, p)
}

func (e *Editor) Status() string {
	return sessionStatus(e.sess)
}

func (e *Editor) Command(cmd Command) bool {
	switch cmd {
	case CmdRotateLeft:
		return e.sess.Rotate(-90)
	case CmdRotateRight:
		return e.sess.Rotate(90)
	}
	return applySessionCommand(e.sess, cmd)
}

func sessionStatus(s *session.Session) string {
	parts := []string{
		"mode: " + s.Mode().String(),
		fmt.Sprintf("shapes: %d", s.ShapeCount()),
	}
	if n := len(s.PendingPoints()); n > 0 && s.Mode() == session.ModePolygon {
		parts = append(parts, fmt.Sprintf("vertices: %d", n))
	}
	size := s.Size()
	parts = append(parts, fmt.Sprintf("%dx%d", size.X, size.Y))
	return strings.Join(parts, " | ")
}

// Live annotates a camera or video stream.
type Live struct {
	title string
	ann   *live.Annotator
}

// NewLive returns a controller for ann.
func NewLive(title string, ann *live.Annotator) *Live {
	return &Live{title: title, ann: ann}
}

func (l *Live) Title() string     { return l.title }
func (l *Live) View() *image.RGBA { return l.ann.Last() }

// Frame composes the next frame from the stream.
func (l *Live) Frame(frame *image.RGBA) {
	if _, err := l.ann.Compose(frame); err != nil {
		log.Printf("compose frame: %v", err)
	}
}

func (l *Live) Pointer(k session.PointerKind, p image.Point) { l.ann.Pointer(k, p) }

func (l *Live) Status() string {
	s := l.ann.Session()
	if s == nil {
		return "waiting for frames"
	}
	parts := []string{sessionStatus(s)}
	if roi := l.ann.ROI(); !roi.Empty() {
		parts = append(parts, fmt.Sprintf("roi: %v", roi))
	}
	if t := l.ann.Turns(); t != 0 {
		parts = append(parts, fmt.Sprintf("rotation: %d", t*90))
	}
	if rec := l.ann.Recorder(); rec != nil {
		parts = append(parts, "rec: "+rec.State().String())
	}
	return strings.Join(parts, " | ")
}

func (l *Live) Command(cmd Command) bool {
	rec := l.ann.Recorder()
	switch cmd {
	case CmdRotateLeft:
		return l.ann.Rotate(-90)
	case CmdRotateRight:
		return l.ann.Rotate(90)
	case CmdRecordStart:
		if err := l.ann.StartRecording(); err != nil {
			log.Printf("start recording: %v", err)
		}
		return true
	case CmdRecordPause:
		if rec != nil {
			rec.Pause()
		}
		return true
	case CmdRecordResume:
		if rec != nil {
			rec.Resume()
		}
		return true
	case CmdRecordStop:
		if rec != nil {
			if err := rec.Stop(); err != nil {
				log.Printf("stop recording: %v", err)
			}
		}
		return true
	}
	s := l.ann.Session()
	if s == nil {
		return false
	}
	// a second crop key press while cropping returns to the full frame
	if cmd == CmdCrop && s.Mode() == session.ModeCrop && !l.ann.ROI().Empty() {
		l.ann.ClearROI()
		return true
	}
	return applySessionCommand(s, cmd)
}

// Close stops the recording and releases the stream.
func (l *Live) Close() error { return l.ann.Close() }

// Viewer shows an image that is not edited, optionally transforming each
// streamed frame.
type Viewer struct {
	title     string
	img       *image.RGBA
	status    string
	transform func(*image.RGBA) (*image.RGBA, string)
}

// NewViewer shows img. transform may be nil when no frames are streamed.
func NewViewer(title string, img *image.RGBA, transform func(*image.RGBA) (*image.RGBA, string)) *Viewer {
	return &Viewer{title: title, img: img, transform: transform}
}

func (v *Viewer) Title() string        { return v.title }
func (v *Viewer) View() *image.RGBA    { return v.img }
func (v *Viewer) Status() string       { return v.status }
func (v *Viewer) Command(Command) bool { return false }

func (v *Viewer) Pointer(session.PointerKind, image.Point) {}

// SetStatus replaces the status line.
func (v *Viewer) SetStatus(s string) { v.status = s }

func (v *Viewer) Frame(frame *image.RGBA) {
	if v.transform == nil {
		v.img = frame
		return
	}
	v.img, v.status = v.transform(frame)
}

var (
	_ Controller = (*Editor)(nil)
	_ Controller = (*Live)(nil)
	_ Controller = (*Viewer)(nil)
	_ FrameSink  = (*Live)(nil)
	_ FrameSink  = (*Viewer)(nil)
)
