package record

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/example/shapesketch/internal/cvmat"
)

type videoWriter struct {
	vw *gocv.VideoWriter
}

// OpenVideoWriter returns an Opener writing through OpenCV with the given
// four character codec.
func OpenVideoWriter(codec string) Opener {
	return func(path string, fps float64, width, height int) (Sink, error) {
		vw, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
		if err != nil {
			return nil, err
		}
		if !vw.IsOpened() {
			vw.Close()
			return nil, fmt.Errorf("video writer for %s not opened", codec)
		}
		return &videoWriter{vw: vw}, nil
	}
}

func (w *videoWriter) Write(frame *image.RGBA) error {
	mat, err := cvmat.FromRGBA(frame)
	if err != nil {
		return err
	}
	defer mat.Close()
	return w.vw.Write(mat)
}

func (w *videoWriter) Close() error {
	return w.vw.Close()
}
