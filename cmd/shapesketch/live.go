package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/example/shapesketch/internal/live"
	"github.com/example/shapesketch/internal/record"
	"github.com/example/shapesketch/internal/source"
	"github.com/example/shapesketch/internal/ui"
)

// stream is a frame source that knows its frame size up front.
type stream interface {
	source.FrameSource
	Size() image.Point
}

var (
	openCameraFn = func(device int) (stream, error) {
		c, err := source.OpenCamera(device)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	openVideoFn = func(path string) (stream, error) {
		c, err := source.OpenVideo(path)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	openWriterFn = record.OpenVideoWriter
)

// liveCmd annotates a camera feed or a video file and can record the result.
type liveCmd struct {
	device    int
	video     string
	recordDir string
	fps       float64
	codec     string
	*root
	fs *flag.FlagSet
}

func (l *liveCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseLiveCmd(args []string, r *root) (*liveCmd, error) {
	fs := flag.NewFlagSet("live", flag.ExitOnError)
	cfg := r.cfg()
	l := &liveCmd{root: r, fs: fs}
	fs.IntVar(&l.device, "device", cfg.Camera.Device, "camera device index")
	fs.StringVar(&l.video, "video", "", "play a video file instead of the camera")
	fs.StringVar(&l.recordDir, "record-dir", cfg.RecordDir, "directory for recordings")
	fs.Float64Var(&l.fps, "fps", cfg.Record.FPS, "recording frame rate")
	fs.StringVar(&l.codec, "codec", cfg.Record.Codec, "four character code of the recording codec")
	fs.Usage = usageFunc(l)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: l}
	}
	if len(l.codec) != 4 {
		return nil, fmt.Errorf("codec %q must be four characters", l.codec)
	}
	return l, nil
}

func (l *liveCmd) open() (stream, string, error) {
	if l.video != "" {
		s, err := openVideoFn(l.video)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open video: %w", err)
		}
		return s, l.video, nil
	}
	s, err := openCameraFn(l.device)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open camera: %w", err)
	}
	return s, fmt.Sprintf("camera %d", l.device), nil
}

func (l *liveCmd) Run() error {
	src, name, err := l.open()
	if err != nil {
		return err
	}
	cfg := l.cfg()
	rec := record.New(
		record.WithDir(l.recordDir),
		record.WithFPS(l.fps),
		record.WithOpener(openWriterFn(l.codec)),
		record.WithOnStop(l.notify().Recorded),
	)
	ann := live.New(src, rec,
		live.WithSessionOptions(sessionOptions(cfg, nil)...),
		live.WithBackground(cfg.Canvas.Background),
	)
	ctrl := ui.NewLive(fmt.Sprintf("%s - %s", l.Program(), name), ann)

	opts := []ui.Option{
		ui.WithPump(func(ctx context.Context, deliver func(*image.RGBA)) error {
			return live.Pump(ctx, src, deliver)
		}),
		ui.WithOnClose(func() {
			if err := ctrl.Close(); err != nil {
				log.Printf("close %s: %v", name, err)
			}
		}),
	}
	if sz := src.Size(); sz.X > 0 && sz.Y > 0 {
		opts = append(opts, ui.WithSize(sz.X, sz.Y))
	}
	if l.video != "" {
		// files decode faster than real time
		opts = append(opts, ui.WithFrameRate(l.fps))
	}
	l.show(ctrl, opts...)
	return nil
}
