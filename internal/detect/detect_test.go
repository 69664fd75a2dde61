package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/shape"
)

func TestClassify(t *testing.T) {
	bounds := image.Rect(10, 10, 50, 40)
	tri := []image.Point{{10, 40}, {30, 10}, {50, 40}}
	quad := []image.Point{{10, 10}, {50, 10}, {50, 40}, {10, 40}}
	hex := []image.Point{{20, 10}, {40, 10}, {50, 25}, {40, 40}, {20, 40}, {10, 25}}

	if _, ok := Classify(tri[:2], bounds); ok {
		t.Fatalf("two points classified")
	}

	s, ok := Classify(tri, bounds)
	p, isPoly := s.(shape.Polygon)
	if !ok || !isPoly || p.Color != TriangleColor || Label(s) != "Triangle" {
		t.Fatalf("triangle classified as %+v", s)
	}

	s, _ = Classify(quad, bounds)
	r, isRect := s.(shape.Rectangle)
	if !isRect || r.TopLeft != bounds.Min || r.Color != RectangleColor || Label(s) != "Square" {
		t.Fatalf("quad classified as %+v", s)
	}

	s, _ = Classify(hex, bounds)
	if p, ok := s.(shape.Polygon); !ok || p.Color != PolygonColor || Label(s) != "Polygon" {
		t.Fatalf("hexagon classified as %+v", s)
	}
}

func TestLabelPosition(t *testing.T) {
	c := shape.Circle{Center: image.Pt(50, 60), Radius: 20}
	if got := LabelPosition(c); got != image.Pt(20, 30) {
		t.Fatalf("circle label at %v", got)
	}
	if Label(c) != "Circle" {
		t.Fatalf("label = %q", Label(c))
	}
}

func TestAnnotateDrawsShapeAndText(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	img := raster.New(120, 120, white)
	c := shape.Circle{Center: image.Pt(60, 70), Radius: 20, Color: CircleColor, Thickness: 2}
	Annotate(img, []shape.Shape{c})

	if img.RGBAAt(80, 70) != CircleColor {
		t.Fatalf("circle outline missing")
	}
	dark := false
	for y := 25; y < 40 && !dark; y++ {
		for x := 30; x < 30+raster.TextWidth("Circle"); x++ {
			if img.RGBAAt(x, y) == labelColor {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Fatalf("label text not drawn")
	}
}

func TestNewFillsZeroParams(t *testing.T) {
	d := New(Params{MinArea: 1000})
	p := d.Params()
	if p.MinArea != 1000 || p.Param2 != 30 || p.MaxRadius != 100 {
		t.Fatalf("params = %+v", p)
	}
}

func TestDetectFindsRectangle(t *testing.T) {
	img := raster.New(300, 300, color.RGBA{255, 255, 255, 255})
	raster.FillRect(img, image.Rect(60, 80, 200, 180), color.RGBA{0, 0, 0, 255})

	shapes, err := New(DefaultParams()).Detect(img)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	for _, s := range shapes {
		if r, ok := s.(shape.Rectangle); ok {
			min, max := r.Corners()
			if abs(min.X-60) <= 2 && abs(min.Y-80) <= 2 && abs(max.X-200) <= 2 && abs(max.Y-180) <= 2 {
				return
			}
		}
	}
	t.Fatalf("rectangle not found in %+v", shapes)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
