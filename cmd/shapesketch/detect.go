package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/example/shapesketch/internal/config"
	"github.com/example/shapesketch/internal/detect"
	"github.com/example/shapesketch/internal/live"
	"github.com/example/shapesketch/internal/ui"
)

// detectCmd finds circles, triangles, rectangles and polygons in an image or
// a camera feed.
type detectCmd struct {
	file   string
	camera bool
	device int
	output string
	*root
	fs *flag.FlagSet
}

func (d *detectCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDetectCmd(args []string, r *root) (*detectCmd, error) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	d := &detectCmd{root: r, fs: fs}
	fs.StringVar(&d.file, "file", "", "image file to scan")
	fs.BoolVar(&d.camera, "camera", false, "scan the camera feed")
	fs.IntVar(&d.device, "device", r.cfg().Camera.Device, "camera device index")
	fs.StringVar(&d.output, "output", "", "write the annotated image to this png instead of showing it")
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.file == "" && fs.NArg() == 1 {
		d.file = fs.Arg(0)
	}
	switch {
	case d.file != "" && d.camera:
		return nil, errors.New("-file and -camera cannot be used together")
	case d.file == "" && !d.camera:
		return nil, &UsageError{of: d}
	case d.camera && d.output != "":
		return nil, errors.New("-output needs -file")
	}
	return d, nil
}

func detectParams(c config.Detect) detect.Params {
	return detect.Params{
		MinArea:     c.MinArea,
		Epsilon:     c.Epsilon,
		Threshold:   c.Threshold,
		MinRadius:   c.MinRadius,
		MaxRadius:   c.MaxRadius,
		Param1:      c.Param1,
		Param2:      c.Param2,
		AspectRatio: c.AspectRatio,
	}
}

func (d *detectCmd) Run() error {
	det := detect.New(detectParams(d.cfg().Detect))
	if d.camera {
		return d.runCamera(det)
	}
	return d.runFile(det)
}

func (d *detectCmd) runFile(det *detect.Detector) error {
	img, err := loadImageFn(d.file)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	out, shapes, err := det.Run(img)
	if err != nil {
		return fmt.Errorf("detect shapes: %w", err)
	}
	for _, s := range shapes {
		log.Printf("%s at %v", detect.Label(s), s.Bounds())
	}
	if d.output != "" {
		if err := writePNG(d.output, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d shapes written to %s\n", len(shapes), d.output)
		return nil
	}
	v := ui.NewViewer(fmt.Sprintf("%s - %s", d.Program(), filepath.Base(d.file)), out, nil)
	v.SetStatus(fmt.Sprintf("%d shapes", len(shapes)))
	d.show(v)
	return nil
}

func (d *detectCmd) runCamera(det *detect.Detector) error {
	src, err := openCameraFn(d.device)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer src.Close()

	transform := func(frame *image.RGBA) (*image.RGBA, string) {
		out, shapes, err := det.Run(frame)
		if err != nil {
			return frame, err.Error()
		}
		return out, fmt.Sprintf("%d shapes", len(shapes))
	}
	v := ui.NewViewer(fmt.Sprintf("%s - detect camera %d", d.Program(), d.device), nil, transform)
	v.SetStatus("waiting for frames")
	opts := []ui.Option{
		ui.WithPump(func(ctx context.Context, deliver func(*image.RGBA)) error {
			return live.Pump(ctx, src, deliver)
		}),
	}
	if sz := src.Size(); sz.X > 0 && sz.Y > 0 {
		opts = append(opts, ui.WithSize(sz.X, sz.Y))
	}
	d.show(v, opts...)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
