package session

import (
	"image"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/shape"
)

func (s *Session) dragShape(end image.Point) shape.Shape {
	if s.mode == ModeCircle {
		return shape.CircleFromDrag(s.start, end, s.color, s.thickness)
	}
	return shape.Rectangle{TopLeft: s.start, BottomRight: end, Color: s.color, Thickness: s.thickness}
}

func (s *Session) handleDrag(kind PointerKind, p image.Point) {
	switch kind {
	case PointerDown:
		s.start = p
		s.drawing = true
	case PointerMove:
		if s.drawing {
			s.renderPreview()
		}
	case PointerUp:
		if !s.drawing {
			return
		}
		s.commit(s.dragShape(p))
		s.drawing = false
		s.preview = nil
	}
}

func (s *Session) handlePolygon(kind PointerKind, p image.Point) {
	switch kind {
	case PointerDown:
		s.pending = append(s.pending, p)
		s.drawing = true
		s.renderPreview()
	case PointerMove:
		if s.drawing {
			s.renderPreview()
		}
	}
}

// FinalizePolygon commits the polygon under construction when it has more
// than two vertices. Fewer vertices are discarded. Either way the pending
// vertices are cleared. Outside polygon mode it does nothing.
func (s *Session) FinalizePolygon() bool {
	if s.mode != ModePolygon {
		return false
	}
	pts := s.pending
	s.pending = nil
	s.drawing = false
	s.preview = nil
	if len(pts) <= 2 {
		return false
	}
	poly, err := shape.NewPolygon(pts, s.color, s.thickness)
	if err != nil {
		return false
	}
	s.commit(poly)
	return true
}

func (s *Session) eraserRect(p image.Point) image.Rectangle {
	half := s.eraserSize / 2
	min := p.Sub(image.Pt(half, half))
	r := image.Rectangle{Min: min, Max: min.Add(image.Pt(s.eraserSize, s.eraserSize))}
	return r.Intersect(s.canvas.Bounds())
}

func (s *Session) handleErase(kind PointerKind, p image.Point) {
	switch kind {
	case PointerDown:
		s.erasing = true
	case PointerMove:
		if s.erasing {
			r := s.eraserRect(p)
			bg := s.canvas.Background()
			s.canvas.Paint(func(dst *image.RGBA) { raster.FillRect(dst, r, bg) })
		}
		s.renderPreview()
	case PointerUp:
		// a release without a press erased nothing
		if !s.erasing {
			return
		}
		s.erasing = false
		s.record()
	}
}

func normalize(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon()
}

func (s *Session) handleCrop(kind PointerKind, p image.Point) {
	switch kind {
	case PointerDown:
		if len(s.pending) == 0 {
			s.pending = []image.Point{p}
			s.drawing = true
			return
		}
		r := normalize(s.pending[0], p).Intersect(s.canvas.Bounds())
		s.pending = nil
		s.drawing = false
		s.preview = nil
		s.applyCrop(r)
	case PointerMove:
		if len(s.pending) == 1 {
			s.renderPreview()
		}
	}
}

func (s *Session) applyCrop(r image.Rectangle) {
	if r.Empty() {
		return
	}
	var out *image.RGBA
	s.canvas.Paint(func(dst *image.RGBA) { out = raster.Crop(dst, r) })
	s.lastCrop = out
	if s.onCrop != nil {
		s.onCrop(r, raster.Clone(out))
	}
}

// Rotate turns the canvas by +90 or -90 degrees and records the result.
// Other angles are ignored. Any unfinished gesture is dropped; the active
// mode is kept.
func (s *Session) Rotate(angle int) bool {
	if angle != 90 && angle != -90 {
		return false
	}
	s.clearGesture()
	s.canvas.Rotate(angle > 0)
	s.record()
	return true
}

func (s *Session) renderPreview() {
	if !s.hasCursor {
		s.preview = nil
		return
	}
	p := s.cursor
	buf := s.canvas.Get()
	switch s.mode {
	case ModeCircle, ModeRectangle:
		if !s.drawing {
			s.preview = nil
			return
		}
		s.dragShape(p).Render(buf)
	case ModePolygon:
		if len(s.pending) == 0 {
			s.preview = nil
			return
		}
		raster.Polyline(buf, s.pending, false, s.color, s.thickness)
		last := s.pending[len(s.pending)-1]
		raster.Line(buf, last.X, last.Y, p.X, p.Y, s.color, s.thickness)
	case ModeErase:
		overlay := raster.Clone(buf)
		raster.FillRect(overlay, s.eraserRect(p), s.eraserPreview)
		raster.Blend(buf, overlay, eraserAlpha)
	case ModeCrop:
		if len(s.pending) != 1 {
			s.preview = nil
			return
		}
		r := normalize(s.pending[0], p)
		r.Max = r.Max.Add(image.Pt(1, 1))
		raster.Rect(buf, r, s.cropPreview, cropPreviewWidth)
	default:
		s.preview = nil
		return
	}
	s.preview = buf
}
