package ui

import (
	"fmt"
	"image"
	"log"

	"github.com/example/shapesketch/internal/clipboard"
	"github.com/example/shapesketch/internal/notify"
)

const cropQueue = 4

// Exporter receives crop exports from an edit session. Each crop is copied to
// the clipboard when enabled and queued for display in its own window.
type Exporter struct {
	crops    chan *image.RGBA
	copy     bool
	notifier *notify.Notifier
	write    func(image.Image) error
}

// NewExporter returns an exporter. n may be nil.
func NewExporter(copyToClipboard bool, n *notify.Notifier) *Exporter {
	return &Exporter{
		crops:    make(chan *image.RGBA, cropQueue),
		copy:     copyToClipboard,
		notifier: n,
		write:    clipboard.WriteImage,
	}
}

// Crop matches session.CropHandler.
func (e *Exporter) Crop(r image.Rectangle, img *image.RGBA) {
	log.Printf("cropped %v", r)
	if e.copy {
		if err := e.write(img); err != nil {
			log.Printf("copy crop: %v", err)
		} else {
			e.notifier.Copied(fmt.Sprintf("%dx%d crop", r.Dx(), r.Dy()), img)
		}
	}
	select {
	case e.crops <- img:
	default:
		log.Printf("crop window queue full, dropping crop")
	}
}

// Crops delivers exported crops to the window loop.
func (e *Exporter) Crops() <-chan *image.RGBA { return e.crops }
