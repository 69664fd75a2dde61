// Package canvas owns the bitmap being edited.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/example/shapesketch/internal/raster"
)

// ErrInvalidSize is returned when a canvas is created with a non-positive dimension.
var ErrInvalidSize = errors.New("canvas dimensions must be positive")

// Canvas is a fixed size RGB bitmap with a background colour. Alpha is kept opaque.
// A canvas built from an image resets to that image instead of a flat fill.
type Canvas struct {
	width, height int
	background    color.RGBA
	buf           *image.RGBA
	base          *image.RGBA
	// quarter turns clockwise since creation, 0..3
	turns int
}

// New creates a canvas filled with background.
func New(width, height int, background color.RGBA) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	background.A = 255
	return &Canvas{
		width:      width,
		height:     height,
		background: background,
		buf:        raster.New(width, height, background),
	}, nil
}

// FromImage creates a canvas holding a copy of img. Reset brings the image
// back; the background colour is what the eraser paints.
func FromImage(img image.Image, background color.RGBA) (*Canvas, error) {
	b := img.Bounds()
	c, err := New(b.Dx(), b.Dy(), background)
	if err != nil {
		return nil, err
	}
	c.base = raster.Clone(raster.ToRGBA(img))
	c.buf = raster.Clone(c.base)
	return c, nil
}

func (c *Canvas) Width() int             { return c.width }
func (c *Canvas) Height() int            { return c.height }
func (c *Canvas) Background() color.RGBA { return c.background }
func (c *Canvas) Turns() int             { return c.turns }
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Get returns an independent copy of the buffer.
func (c *Canvas) Get() *image.RGBA {
	return raster.Clone(c.buf)
}

// Set replaces the buffer with a copy of buf. Mismatched dimensions panic.
func (c *Canvas) Set(buf *image.RGBA) {
	b := buf.Bounds()
	if b.Dx() != c.width || b.Dy() != c.height {
		panic(fmt.Sprintf("canvas: set %dx%d buffer on %dx%d canvas", b.Dx(), b.Dy(), c.width, c.height))
	}
	c.buf = raster.Clone(buf)
}

// Restore is Set for snapshots taken at the given orientation. A buffer in
// the other orientation is accepted so snapshots taken on either side of a
// rotation can be brought back.
func (c *Canvas) Restore(buf *image.RGBA, turns int) {
	b := buf.Bounds()
	switch {
	case b.Dx() == c.width && b.Dy() == c.height:
	case b.Dx() == c.height && b.Dy() == c.width:
		c.width, c.height = c.height, c.width
	default:
		panic(fmt.Sprintf("canvas: restore %dx%d buffer on %dx%d canvas", b.Dx(), b.Dy(), c.width, c.height))
	}
	c.buf = raster.Clone(buf)
	c.turns = ((turns % 4) + 4) % 4
}

// Reset refills the buffer with the background colour, or with the source
// image turned to the current orientation.
func (c *Canvas) Reset() {
	if c.base == nil {
		raster.Fill(c.buf, c.background)
		return
	}
	base := c.base
	for i := 0; i < c.turns; i++ {
		base = raster.RotateQuarter(base, true)
	}
	if base.Bounds().Size() != c.buf.Bounds().Size() {
		raster.Fill(c.buf, c.background)
		return
	}
	copy(c.buf.Pix, base.Pix)
}

// Paint hands the live buffer to fn for in-place drawing.
func (c *Canvas) Paint(fn func(dst *image.RGBA)) {
	fn(c.buf)
}

// Rotate turns the buffer by a quarter turn, clockwise when cw is set.
// Width and height swap.
func (c *Canvas) Rotate(cw bool) {
	c.buf = raster.RotateQuarter(c.buf, cw)
	c.width, c.height = c.height, c.width
	if cw {
		c.turns = (c.turns + 1) % 4
	} else {
		c.turns = (c.turns + 3) % 4
	}
}
