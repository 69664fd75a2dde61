package detect

import (
	"image"
	"image/color"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/shape"
)

var labelColor = color.RGBA{0, 0, 0, 255}

var labelOffset = image.Pt(-10, -10)

// Label names a shape for display.
func Label(s shape.Shape) string {
	d := s.Describe()
	switch d.Kind {
	case shape.KindCircle:
		return "Circle"
	case shape.KindRectangle:
		return "Square"
	case shape.KindPolygon:
		if len(d.Points) == 3 {
			return "Triangle"
		}
		return "Polygon"
	}
	return ""
}

// LabelPosition is the text baseline origin for s, just above and left of
// its bounds.
func LabelPosition(s shape.Shape) image.Point {
	return s.Bounds().Min.Add(labelOffset)
}

// Annotate draws shapes and their labels onto dst.
func Annotate(dst *image.RGBA, shapes []shape.Shape) {
	for _, s := range shapes {
		s.Render(dst)
	}
	for _, s := range shapes {
		raster.Text(dst, Label(s), LabelPosition(s), labelColor)
	}
}

// Run detects shapes in img and returns an annotated copy with the shapes.
func (d *Detector) Run(img *image.RGBA) (*image.RGBA, []shape.Shape, error) {
	shapes, err := d.Detect(img)
	if err != nil {
		return nil, nil, err
	}
	out := raster.Clone(img)
	Annotate(out, shapes)
	return out, shapes, nil
}
