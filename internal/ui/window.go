package ui

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/theme"
)

const (
	statusHeight = 20
	statusPad    = 4
)

// PumpFunc feeds frames to deliver until the stream ends or ctx is done.
type PumpFunc func(ctx context.Context, deliver func(*image.RGBA)) error

type options struct {
	size     image.Point
	pump     PumpFunc
	interval time.Duration
	crops    <-chan *image.RGBA
	onClose  func()
	theme    *theme.Theme
}

// Option configures Run.
type Option func(*options)

// WithSize sets the initial canvas area when the controller has no view yet.
func WithSize(w, h int) Option { return func(o *options) { o.size = image.Pt(w, h) } }

// WithPump streams frames into a FrameSink controller.
func WithPump(fn PumpFunc) Option { return func(o *options) { o.pump = fn } }

// WithFrameRate paces the pump to at most fps frames per second.
func WithFrameRate(fps float64) Option {
	return func(o *options) {
		if fps > 0 {
			o.interval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// WithCrops opens a window for every image received on ch.
func WithCrops(ch <-chan *image.RGBA) Option { return func(o *options) { o.crops = ch } }

// WithTheme sets the window palette.
func WithTheme(t *theme.Theme) Option { return func(o *options) { o.theme = t } }

// WithOnClose runs fn after the main window closes.
func WithOnClose(fn func()) Option { return func(o *options) { o.onClose = fn } }

type frameEvent struct{ img *image.RGBA }

type streamEndEvent struct{ err error }

type cropEvent struct{ img *image.RGBA }

// Run opens the main window for ctrl and blocks until it is closed, q is
// pressed or the frame stream ends.
func Run(ctrl Controller, opts ...Option) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.theme == nil {
		o.theme = theme.Default()
	}
	driver.Main(func(s screen.Screen) { runWindow(s, ctrl, o) })
}

func runWindow(s screen.Screen, ctrl Controller, o options) {
	canvasSize := o.size
	if v := ctrl.View(); v != nil {
		canvasSize = v.Bounds().Size()
	}
	if canvasSize.X <= 0 || canvasSize.Y <= 0 {
		canvasSize = image.Pt(640, 480)
	}
	width, height := canvasSize.X, canvasSize.Y+statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: ctrl.Title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	if o.onClose != nil {
		defer o.onClose()
	}

	ctx, cancel := context.WithCancel(context.Background())
	pumpDone := make(chan struct{})
	// the pump must be idle before onClose releases its source
	defer func() {
		cancel()
		<-pumpDone
	}()

	ack := make(chan struct{}, 1)
	if _, ok := ctrl.(FrameSink); ok && o.pump != nil {
		go func() {
			defer close(pumpDone)
			pumpFrames(ctx, w, o, ack)
		}()
	} else {
		close(pumpDone)
	}
	if o.crops != nil {
		go func() {
			for {
				select {
				case img := <-o.crops:
					w.Send(cropEvent{img})
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	var lay layout
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			lay = paintWindow(s, w, ctrl, o.theme, width, height)
		case frameEvent:
			ctrl.(FrameSink).Frame(e.img)
			select {
			case ack <- struct{}{}:
			default:
			}
			lay = paintWindow(s, w, ctrl, o.theme, width, height)
		case streamEndEvent:
			if e.err != nil && !errors.Is(e.err, context.Canceled) {
				log.Printf("frame stream: %v", e.err)
			}
			log.Printf("frame stream ended")
			return
		case cropEvent:
			go showImage(s, "crop", e.img)
		case mouse.Event:
			if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
				continue
			}
			p, ok := lay.toCanvas(image.Pt(int(e.X), int(e.Y)))
			if !ok && e.Direction == mouse.DirPress {
				continue
			}
			switch e.Direction {
			case mouse.DirPress:
				ctrl.Pointer(session.PointerDown, p)
			case mouse.DirRelease:
				ctrl.Pointer(session.PointerUp, p)
			case mouse.DirNone:
				ctrl.Pointer(session.PointerMove, p)
			default:
				continue
			}
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Code == key.CodeEscape {
				return
			}
			cmd, ok := KeyCommand(e.Rune)
			if !ok {
				continue
			}
			if cmd == CmdQuit {
				return
			}
			if ctrl.Command(cmd) {
				log.Printf("%s", cmd)
			}
			w.Send(paint.Event{})
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// pumpFrames runs the pump, handing frames to the window one at a time.
func pumpFrames(ctx context.Context, w screen.Window, o options, ack <-chan struct{}) {
	var tick <-chan time.Time
	if o.interval > 0 {
		t := time.NewTicker(o.interval)
		defer t.Stop()
		tick = t.C
	}
	deliver := func(img *image.RGBA) {
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return
			}
		}
		w.Send(frameEvent{img})
		select {
		case <-ack:
		case <-ctx.Done():
		}
	}
	err := o.pump(ctx, deliver)
	if ctx.Err() != nil {
		return
	}
	w.Send(streamEndEvent{err})
}

// layout maps between window and canvas coordinates.
type layout struct {
	dst  image.Rectangle
	zoom float64
	src  image.Point
}

// fitLayout scales a view of the given size into the window area above the
// status bar, anchored top left.
func fitLayout(view image.Point, winW, winH int) layout {
	availH := winH - statusHeight
	if view.X <= 0 || view.Y <= 0 || winW <= 0 || availH <= 0 {
		return layout{}
	}
	zx := float64(winW) / float64(view.X)
	zy := float64(availH) / float64(view.Y)
	zoom := zx
	if zy < zoom {
		zoom = zy
	}
	w := int(float64(view.X) * zoom)
	h := int(float64(view.Y) * zoom)
	return layout{dst: image.Rect(0, 0, w, h), zoom: zoom, src: view}
}

// toCanvas converts a window point to canvas coordinates. Points outside the
// image are clamped and reported as not inside.
func (l layout) toCanvas(p image.Point) (image.Point, bool) {
	if l.zoom == 0 {
		return image.Point{}, false
	}
	inside := p.In(l.dst)
	c := image.Pt(
		int(float64(p.X-l.dst.Min.X)/l.zoom),
		int(float64(p.Y-l.dst.Min.Y)/l.zoom),
	)
	c.X = clamp(c.X, 0, l.src.X-1)
	c.Y = clamp(c.Y, 0, l.src.Y-1)
	return c, inside
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func paintWindow(s screen.Screen, w screen.Window, ctrl Controller, th *theme.Theme, width, height int) layout {
	if width <= 0 || height <= 0 {
		return layout{}
	}
	b, err := s.NewBuffer(image.Pt(width, height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return layout{}
	}
	defer b.Release()
	dst := b.RGBA()
	raster.Fill(dst, th.Backdrop)

	var lay layout
	if view := ctrl.View(); view != nil {
		lay = fitLayout(view.Bounds().Size(), width, height)
		if lay.zoom == 1 {
			draw.Draw(dst, lay.dst, view, view.Bounds().Min, draw.Src)
		} else {
			xdraw.NearestNeighbor.Scale(dst, lay.dst, view, view.Bounds(), draw.Src, nil)
		}
	}
	drawStatus(dst, th, ctrl.Status(), width, height)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return lay
}

func drawStatus(dst *image.RGBA, th *theme.Theme, text string, width, height int) {
	bar := image.Rect(0, height-statusHeight, width, height)
	raster.FillRect(dst, bar, th.StatusBar)
	raster.Text(dst, text, image.Pt(statusPad, height-statusPad-2), th.StatusText)
}

// showImage opens a window displaying img until it is closed.
func showImage(s screen.Screen, title string, img *image.RGBA) {
	sz := img.Bounds().Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: title})
	if err != nil {
		log.Printf("%s window: %v", title, err)
		return
	}
	defer w.Release()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case paint.Event:
			b, err := s.NewBuffer(sz)
			if err != nil {
				log.Printf("new buffer: %v", err)
				continue
			}
			draw.Draw(b.RGBA(), b.Bounds(), img, img.Bounds().Min, draw.Src)
			w.Upload(image.Point{}, b, b.Bounds())
			w.Publish()
			b.Release()
		case key.Event:
			if e.Direction == key.DirPress && (e.Code == key.CodeEscape || e.Rune == 'q') {
				return
			}
		}
	}
}
