// Package detect finds circles, triangles, rectangles and polygons in a
// bitmap and turns them into shapes that can be drawn and labelled.
package detect

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/example/shapesketch/internal/cvmat"
	"github.com/example/shapesketch/internal/shape"
)

// Params holds the detector thresholds.
type Params struct {
	MinArea   float64
	Epsilon   float64
	Threshold float64
	MinRadius int
	MaxRadius int
	Param1    float64
	Param2    float64
	// AspectRatio is accepted for configuration compatibility. Four sided
	// contours are always reported as rectangles.
	AspectRatio float64
}

// DefaultParams returns the stock thresholds.
func DefaultParams() Params {
	return Params{
		MinArea:     500,
		Epsilon:     0.02,
		Threshold:   120,
		MinRadius:   10,
		MaxRadius:   100,
		Param1:      100,
		Param2:      30,
		AspectRatio: 0.1,
	}
}

const (
	circleSigma = 2
	// contours closer than this to the full frame area are the frame itself
	frameMargin = 10000
)

var (
	circleKernel  = image.Pt(9, 9)
	contourKernel = image.Pt(5, 5)

	CircleColor    = color.RGBA{255, 0, 0, 255}
	TriangleColor  = color.RGBA{0, 0, 255, 255}
	RectangleColor = color.RGBA{255, 255, 0, 255}
	PolygonColor   = color.RGBA{0, 255, 0, 255}
)

// Detector runs the detection pipeline with fixed parameters.
type Detector struct {
	params Params
}

// New returns a detector using p. Zero fields fall back to the defaults.
func New(p Params) *Detector {
	d := DefaultParams()
	if p.MinArea > 0 {
		d.MinArea = p.MinArea
	}
	if p.Epsilon > 0 {
		d.Epsilon = p.Epsilon
	}
	if p.Threshold > 0 {
		d.Threshold = p.Threshold
	}
	if p.MinRadius > 0 {
		d.MinRadius = p.MinRadius
	}
	if p.MaxRadius > 0 {
		d.MaxRadius = p.MaxRadius
	}
	if p.Param1 > 0 {
		d.Param1 = p.Param1
	}
	if p.Param2 > 0 {
		d.Param2 = p.Param2
	}
	if p.AspectRatio > 0 {
		d.AspectRatio = p.AspectRatio
	}
	return &Detector{params: d}
}

func (d *Detector) Params() Params { return d.params }

// Detect returns the circles found by the Hough transform followed by the
// triangles, rectangles and polygons found by contour approximation.
func (d *Detector) Detect(img *image.RGBA) ([]shape.Shape, error) {
	mat, err := cvmat.FromRGBA(img)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	shapes := d.circles(gray)
	shapes = append(shapes, d.contours(gray, img.Bounds().Dx(), img.Bounds().Dy())...)
	return shapes, nil
}

func (d *Detector) circles(gray gocv.Mat) []shape.Shape {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, circleKernel, circleSigma, circleSigma, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()
	minDist := float64(gray.Rows()) / 8
	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient, 1, minDist,
		d.params.Param1, d.params.Param2, d.params.MinRadius, d.params.MaxRadius)
	if circles.Empty() {
		return nil
	}

	var out []shape.Shape
	for i := 0; i < circles.Cols(); i++ {
		cx := circles.GetFloatAt(0, i*3)
		cy := circles.GetFloatAt(0, i*3+1)
		r := circles.GetFloatAt(0, i*3+2)
		out = append(out, shape.Circle{
			Center:    image.Pt(round(cx), round(cy)),
			Radius:    round(r),
			Color:     CircleColor,
			Thickness: shape.DefaultThickness,
		})
	}
	return out
}

func (d *Detector) contours(gray gocv.Mat, width, height int) []shape.Shape {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, contourKernel, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, float32(d.params.Threshold), 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(binary, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	maxArea := float64(width*height) - frameMargin
	var out []shape.Shape
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area <= d.params.MinArea || area >= maxArea {
			continue
		}
		epsilon := d.params.Epsilon * gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, epsilon, true)
		pts := make([]image.Point, 0, approx.Size())
		for j := 0; j < approx.Size(); j++ {
			pts = append(pts, approx.At(j))
		}
		approx.Close()
		if s, ok := Classify(pts, gocv.BoundingRect(contour)); ok {
			out = append(out, s)
		}
	}
	return out
}

// Classify maps an approximated contour onto a shape: three vertices give a
// triangle, four give the bounding rectangle and more give a polygon.
func Classify(pts []image.Point, bounds image.Rectangle) (shape.Shape, bool) {
	switch n := len(pts); {
	case n < 3:
		return nil, false
	case n == 3:
		return shape.Polygon{Points: pts, Color: TriangleColor, Thickness: shape.DefaultThickness}, true
	case n == 4:
		return shape.Rectangle{
			TopLeft:     bounds.Min,
			BottomRight: bounds.Max,
			Color:       RectangleColor,
			Thickness:   shape.DefaultThickness,
		}, true
	default:
		return shape.Polygon{Points: pts, Color: PolygonColor, Thickness: shape.DefaultThickness}, true
	}
}

func round(f float32) int { return int(math.Round(float64(f))) }
