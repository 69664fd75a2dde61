// Package session turns pointer events and commands into committed canvas
// edits, keeping the shape list and undo history in step.
package session

import (
	"image"
	"image/color"

	"github.com/example/shapesketch/internal/canvas"
	"github.com/example/shapesketch/internal/history"
	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/shape"
)

// Mode selects how pointer events are interpreted.
type Mode int

const (
	ModeNone Mode = iota
	ModeCircle
	ModeRectangle
	ModePolygon
	ModeErase
	ModeCrop
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeCircle:
		return "circle"
	case ModeRectangle:
		return "rectangle"
	case ModePolygon:
		return "polygon"
	case ModeErase:
		return "erase"
	case ModeCrop:
		return "crop"
	case ModeRotate:
		return "rotate"
	}
	return "none"
}

// PointerKind is the kind of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

const (
	DefaultEraserSize = 20
	cropPreviewWidth  = 2
	eraserAlpha       = 0.5
)

var (
	defaultEraserPreview = color.RGBA{200, 200, 200, 255}
	defaultCropPreview   = color.RGBA{255, 0, 0, 255}
)

// Session is the edit state machine for one canvas. It is not safe for
// concurrent use; feed it from a single event loop.
type Session struct {
	canvas  *canvas.Canvas
	shapes  *shape.List
	history *history.Log

	mode    Mode
	drawing bool
	erasing bool
	start   image.Point
	pending []image.Point

	cursor    image.Point
	hasCursor bool
	preview   *image.RGBA
	lastCrop  *image.RGBA

	color         color.RGBA
	colorSet      bool
	thickness     int
	eraserSize    int
	maxHistory    int
	eraserPreview color.RGBA
	cropPreview   color.RGBA
	onCrop        CropHandler
	seed          []shape.Shape
}

// Option configures a Session.
type Option func(*Session)

// WithColor sets the stroke colour of new shapes.
func WithColor(c color.RGBA) Option {
	return func(s *Session) { s.color, s.colorSet = c, true }
}

// WithThickness sets the stroke width of new shapes.
func WithThickness(t int) Option { return func(s *Session) { s.thickness = t } }

// WithEraserSize sets the side of the square eraser block.
func WithEraserSize(n int) Option { return func(s *Session) { s.eraserSize = n } }

// WithMaxHistory bounds the undo log.
func WithMaxHistory(n int) Option { return func(s *Session) { s.maxHistory = n } }

// CropHandler receives the clamped crop rectangle and a copy of its pixels.
type CropHandler func(rect image.Rectangle, img *image.RGBA)

// WithCropHandler receives every crop export.
func WithCropHandler(fn CropHandler) Option { return func(s *Session) { s.onCrop = fn } }

// WithEraserPreviewColor sets the colour of the translucent eraser box.
func WithEraserPreviewColor(c color.RGBA) Option { return func(s *Session) { s.eraserPreview = c } }

// WithCropPreviewColor sets the colour of the crop rubber band.
func WithCropPreviewColor(c color.RGBA) Option { return func(s *Session) { s.cropPreview = c } }

// WithShapes seeds the shape list. The shapes are painted onto the canvas
// before the initial history entry is taken.
func WithShapes(shapes []shape.Shape) Option { return func(s *Session) { s.seed = shapes } }

// New creates a session editing c.
func New(c *canvas.Canvas, opts ...Option) *Session {
	s := &Session{
		canvas:        c,
		thickness:     shape.DefaultThickness,
		eraserSize:    DefaultEraserSize,
		maxHistory:    history.DefaultMax,
		eraserPreview: defaultEraserPreview,
		cropPreview:   defaultCropPreview,
	}
	for _, o := range opts {
		o(s)
	}
	if !s.colorSet {
		s.color = raster.Invert(c.Background())
	}
	if s.thickness <= 0 {
		s.thickness = shape.DefaultThickness
	}
	if s.eraserSize <= 0 {
		s.eraserSize = DefaultEraserSize
	}
	s.shapes = shape.NewList(s.seed...)
	s.seed = nil
	if s.shapes.Len() > 0 {
		c.Paint(s.shapes.DrawAll)
	}
	s.history = history.New(s.maxHistory, history.NewEntry(c.Get(), c.Turns(), s.shapes.Snapshot()))
	return s
}

func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) Drawing() bool         { return s.drawing }
func (s *Session) Erasing() bool         { return s.erasing }
func (s *Session) Color() color.RGBA     { return s.color }
func (s *Session) Thickness() int        { return s.thickness }
func (s *Session) EraserSize() int       { return s.eraserSize }
func (s *Session) CanUndo() bool         { return s.history.CanUndo() }
func (s *Session) CanRedo() bool         { return s.history.CanRedo() }
func (s *Session) HistoryLen() int       { return s.history.Len() }
func (s *Session) Shapes() []shape.Shape { return s.shapes.Snapshot() }
func (s *Session) ShapeCount() int       { return s.shapes.Len() }
func (s *Session) Size() image.Point     { return image.Pt(s.canvas.Width(), s.canvas.Height()) }

// Snapshot returns a copy of the committed canvas.
func (s *Session) Snapshot() *image.RGBA { return s.canvas.Get() }

// PendingPoints returns the polygon vertices or crop corners collected so far.
func (s *Session) PendingPoints() []image.Point {
	return append([]image.Point(nil), s.pending...)
}

// LastCrop returns the most recent crop export, or nil.
func (s *Session) LastCrop() *image.RGBA { return raster.Clone(s.lastCrop) }

// View returns what should be displayed: the preview while a gesture is
// live, otherwise the committed canvas.
func (s *Session) View() *image.RGBA {
	if s.preview != nil {
		return raster.Clone(s.preview)
	}
	return s.canvas.Get()
}

// SetMode switches mode, discarding any unfinished gesture.
func (s *Session) SetMode(m Mode) {
	s.clearGesture()
	s.mode = m
}

func (s *Session) clearGesture() {
	s.drawing = false
	s.erasing = false
	s.pending = nil
	s.start = image.Point{}
	s.preview = nil
}

// Pointer feeds one pointer event to the active mode.
func (s *Session) Pointer(kind PointerKind, p image.Point) {
	s.cursor, s.hasCursor = p, true
	switch s.mode {
	case ModeCircle, ModeRectangle:
		s.handleDrag(kind, p)
	case ModePolygon:
		s.handlePolygon(kind, p)
	case ModeErase:
		s.handleErase(kind, p)
	case ModeCrop:
		s.handleCrop(kind, p)
	}
}

// Undo restores the state before the newest commit.
func (s *Session) Undo() bool {
	if !s.history.Undo(target{s}) {
		return false
	}
	s.preview = nil
	return true
}

// Redo re-applies the newest undone commit.
func (s *Session) Redo() bool {
	if !s.history.Redo(target{s}) {
		return false
	}
	s.preview = nil
	return true
}

type target struct{ s *Session }

func (t target) Restore(buf *image.RGBA, turns int) { t.s.canvas.Restore(buf, turns) }
func (t target) ReplaceAll(shapes []shape.Shape)     { t.s.shapes.ReplaceAll(shapes) }

// commit adds sh, repaints the canvas from the shape list and records history.
func (s *Session) commit(sh shape.Shape) {
	s.shapes.Add(sh)
	s.canvas.Reset()
	s.canvas.Paint(s.shapes.DrawAll)
	s.record()
}

func (s *Session) record() {
	s.history.Record(history.NewEntry(s.canvas.Get(), s.canvas.Turns(), s.shapes.Snapshot()))
}

// LoadFrame replaces the canvas content with frame and replays the shapes
// over it without touching history. frame must match the canvas size.
func (s *Session) LoadFrame(frame *image.RGBA) {
	s.canvas.Set(frame)
	s.canvas.Paint(s.shapes.DrawAll)
	if s.preview != nil {
		s.renderPreview()
	}
}
