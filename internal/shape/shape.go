// Package shape defines the committed geometry drawn onto a canvas.
package shape

import (
	"errors"
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"

	"github.com/example/shapesketch/internal/raster"
)

// DefaultThickness is the stroke width used when none is given.
const DefaultThickness = 2

// ErrTooFewPoints is returned when a polygon has fewer than three vertices.
var ErrTooFewPoints = errors.New("polygon needs at least 3 points")

// Kind tags a Shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindRectangle
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// Description is the tagged record returned by Describe. Only the fields of
// the matching Kind are set.
type Description struct {
	Kind      Kind
	Color     color.RGBA
	Thickness int
	Center    image.Point
	Radius    int
	Min, Max  image.Point
	Points    []image.Point
}

// Shape is implemented only by Circle, Rectangle and Polygon.
type Shape interface {
	// Render strokes the outline onto dst.
	Render(dst *image.RGBA)
	Describe() Description
	// Bounds is the inclusive-exclusive box around the geometry.
	Bounds() image.Rectangle
	sealed()
}

// Circle is centred on Center.
type Circle struct {
	Center    image.Point
	Radius    int
	Color     color.RGBA
	Thickness int
}

// CircleFromDrag builds a circle centred on center passing through edge.
func CircleFromDrag(center, edge image.Point, col color.RGBA, thickness int) Circle {
	d := floats.Distance(
		[]float64{float64(center.X), float64(center.Y)},
		[]float64{float64(edge.X), float64(edge.Y)},
		2,
	)
	return Circle{Center: center, Radius: int(d), Color: col, Thickness: thickness}
}

// Render strokes the outline. A zero radius paints a dot as wide as the
// stroke.
func (c Circle) Render(dst *image.RGBA) {
	if c.Radius <= 0 {
		t := c.Thickness
		if t < 1 {
			t = 1
		}
		min := c.Center.Sub(image.Pt(t/2, t/2))
		raster.FillRect(dst, image.Rectangle{Min: min, Max: min.Add(image.Pt(t, t))}, c.Color)
		return
	}
	raster.Circle(dst, c.Center.X, c.Center.Y, c.Radius, c.Color, c.Thickness)
}

func (c Circle) Describe() Description {
	return Description{Kind: KindCircle, Color: c.Color, Thickness: c.Thickness, Center: c.Center, Radius: c.Radius}
}

func (c Circle) Bounds() image.Rectangle {
	r := c.Radius
	return image.Rect(c.Center.X-r, c.Center.Y-r, c.Center.X+r+1, c.Center.Y+r+1)
}

func (Circle) sealed() {}

// Rectangle is defined by two opposite corners in any order.
type Rectangle struct {
	TopLeft     image.Point
	BottomRight image.Point
	Color       color.RGBA
	Thickness   int
}

// Corners returns the normalized corners, both inclusive.
func (r Rectangle) Corners() (min, max image.Point) {
	min, max = r.TopLeft, r.BottomRight
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	return min, max
}

func (r Rectangle) Render(dst *image.RGBA) {
	raster.Rect(dst, r.Bounds(), r.Color, r.Thickness)
}

func (r Rectangle) Describe() Description {
	min, max := r.Corners()
	return Description{Kind: KindRectangle, Color: r.Color, Thickness: r.Thickness, Min: min, Max: max}
}

func (r Rectangle) Bounds() image.Rectangle {
	min, max := r.Corners()
	return image.Rect(min.X, min.Y, max.X+1, max.Y+1)
}

func (Rectangle) sealed() {}

// Polygon is a closed outline through Points.
type Polygon struct {
	Points    []image.Point
	Color     color.RGBA
	Thickness int
}

// NewPolygon copies pts into a polygon.
func NewPolygon(pts []image.Point, col color.RGBA, thickness int) (Polygon, error) {
	if len(pts) < 3 {
		return Polygon{}, ErrTooFewPoints
	}
	return Polygon{Points: append([]image.Point(nil), pts...), Color: col, Thickness: thickness}, nil
}

func (p Polygon) Render(dst *image.RGBA) {
	raster.Polyline(dst, p.Points, true, p.Color, p.Thickness)
}

func (p Polygon) Describe() Description {
	return Description{
		Kind:      KindPolygon,
		Color:     p.Color,
		Thickness: p.Thickness,
		Points:    append([]image.Point(nil), p.Points...),
	}
}

func (p Polygon) Bounds() image.Rectangle {
	if len(p.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p.Points[0], Max: p.Points[0].Add(image.Pt(1, 1))}
	for _, pt := range p.Points[1:] {
		r = r.Union(image.Rectangle{Min: pt, Max: pt.Add(image.Pt(1, 1))})
	}
	return r
}

func (Polygon) sealed() {}

// Clone returns a deep copy of s.
func Clone(s Shape) Shape {
	if p, ok := s.(Polygon); ok {
		p.Points = append([]image.Point(nil), p.Points...)
		return p
	}
	return s
}

// Equal reports structural equality.
func Equal(a, b Shape) bool {
	switch av := a.(type) {
	case Circle:
		bv, ok := b.(Circle)
		return ok && av == bv
	case Rectangle:
		bv, ok := b.(Rectangle)
		return ok && av == bv
	case Polygon:
		bv, ok := b.(Polygon)
		if !ok || av.Color != bv.Color || av.Thickness != bv.Thickness || len(av.Points) != len(bv.Points) {
			return false
		}
		for i := range av.Points {
			if av.Points[i] != bv.Points[i] {
				return false
			}
		}
		return true
	}
	return false
}
