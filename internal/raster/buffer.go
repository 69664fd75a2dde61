package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// New returns an opaque buffer of the given size filled with bg.
func New(width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	Fill(img, bg)
	return img
}

// Clone returns a copy of img rebased to the origin.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// ToRGBA converts any image into an origin based *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Crop returns a copy of the part of rect that lies inside img. The result is
// rebased to the origin and is empty when the two do not overlap.
func Crop(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	src := rect.Canon().Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	if !src.Empty() {
		draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)
	}
	return out
}

// Transpose swaps rows and columns.
func Transpose(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(y, x)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// FlipHorizontal mirrors img across its vertical axis.
func FlipHorizontal(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			si := img.PixOffset(b.Min.X+b.Dx()-1-x, b.Min.Y+y)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// FlipVertical mirrors img across its horizontal axis.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := img.PixOffset(b.Min.X, b.Min.Y+b.Dy()-1-y)
		di := out.PixOffset(0, y)
		copy(out.Pix[di:di+b.Dx()*4], img.Pix[si:si+b.Dx()*4])
	}
	return out
}

// RotateQuarter turns img by a quarter turn. Positive turns are clockwise:
// transpose, then mirror across the vertical axis. Negative turns transpose
// and mirror across the horizontal axis.
func RotateQuarter(img *image.RGBA, clockwise bool) *image.RGBA {
	t := Transpose(img)
	if clockwise {
		return FlipHorizontal(t)
	}
	return FlipVertical(t)
}

// Equal reports whether a and b have the same size and pixels.
func Equal(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		ai := a.PixOffset(ab.Min.X, ab.Min.Y+y)
		bi := b.PixOffset(bb.Min.X, bb.Min.Y+y)
		n := ab.Dx() * 4
		for i := 0; i < n; i++ {
			if a.Pix[ai+i] != b.Pix[bi+i] {
				return false
			}
		}
	}
	return true
}

// Invert returns the RGB complement of c with full opacity.
func Invert(c color.RGBA) color.RGBA {
	return color.RGBA{255 - c.R, 255 - c.G, 255 - c.B, 255}
}
