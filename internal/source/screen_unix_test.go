//go:build linux || freebsd || openbsd || netbsd || dragonfly

package source

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	// two pixels per row, BGRX order
	data := []byte{
		1, 2, 3, 0, 4, 5, 6, 0,
		7, 8, 9, 0, 10, 11, 12, 0,
	}
	img, err := xImageToRGBA(setup, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{12, 11, 10, 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestXImageToRGBARejectsShallowDepth(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 16, BitsPerPixel: 16}}}
	if _, err := xImageToRGBA(setup, 16, make([]byte, 8), 2, 2); err == nil {
		t.Fatalf("expected error for 16bpp")
	}
}
