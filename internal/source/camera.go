package source

import (
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"

	"github.com/example/shapesketch/internal/cvmat"
)

// Camera reads frames from a capture device or a video file.
type Camera struct {
	vc    *gocv.VideoCapture
	frame gocv.Mat
	name  string
}

// OpenCamera opens capture device n.
func OpenCamera(device int) (*Camera, error) {
	return open(device, fmt.Sprintf("camera %d", device))
}

// OpenVideo opens a video file and plays it as a frame source.
func OpenVideo(path string) (*Camera, error) {
	return open(path, path)
}

func open(target interface{}, name string) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(target)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open %s: device not available", name)
	}
	return &Camera{vc: vc, frame: gocv.NewMat(), name: name}, nil
}

// Read returns the next frame, or io.EOF once no frame can be read.
func (c *Camera) Read() (*image.RGBA, error) {
	if ok := c.vc.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, io.EOF
	}
	img, err := cvmat.ToRGBA(c.frame)
	if err != nil {
		return nil, fmt.Errorf("%s frame: %w", c.name, err)
	}
	return img, nil
}

// Size reports the frame size announced by the device.
func (c *Camera) Size() image.Point {
	return image.Pt(int(c.vc.Get(gocv.VideoCaptureFrameWidth)), int(c.vc.Get(gocv.VideoCaptureFrameHeight)))
}

// Close releases the device.
func (c *Camera) Close() error {
	if err := c.frame.Close(); err != nil {
		return err
	}
	return c.vc.Close()
}
