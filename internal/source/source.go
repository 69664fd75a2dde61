// Package source provides the bitmaps an editing session starts from: image
// files, screen grabs and camera or video streams.
package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/shapesketch/internal/raster"
)

// FrameSource yields frames until it returns an error. io.EOF marks the end
// of the stream.
type FrameSource interface {
	Read() (*image.RGBA, error)
	Close() error
}

// LoadImage decodes the image file at path.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image %s: empty %s image", path, format)
	}
	return raster.Clone(raster.ToRGBA(img)), nil
}
