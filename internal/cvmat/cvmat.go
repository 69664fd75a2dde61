// Package cvmat converts between *image.RGBA buffers and OpenCV BGR mats.
package cvmat

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FromRGBA returns a CV_8UC3 BGR mat holding img. The caller closes it.
func FromRGBA(img *image.RGBA) (gocv.Mat, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := (y*w + x) * 3
			// OpenCV uses BGR order
			data[di+0] = img.Pix[si+2]
			data[di+1] = img.Pix[si+1]
			data[di+2] = img.Pix[si+0]
		}
	}
	return gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, data)
}

// ToRGBA copies a CV_8UC3 BGR mat into a new opaque buffer.
func ToRGBA(mat gocv.Mat) (*image.RGBA, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported mat type %v", mat.Type())
	}
	h, w := mat.Rows(), mat.Cols()
	data := mat.ToBytes()
	if len(data) < w*h*3 {
		return nil, fmt.Errorf("mat holds %d bytes, want %d", len(data), w*h*3)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		rowOffset := y * img.Stride
		for x := 0; x < w; x++ {
			si := (y*w + x) * 3
			pixOffset := rowOffset + x*4
			img.Pix[pixOffset+0] = data[si+2] // R
			img.Pix[pixOffset+1] = data[si+1] // G
			img.Pix[pixOffset+2] = data[si+0] // B
			img.Pix[pixOffset+3] = 255
		}
	}
	return img, nil
}
