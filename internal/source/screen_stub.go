//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"fmt"
	"image"
)

// GrabScreen is not available without X11.
func GrabScreen() (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}
