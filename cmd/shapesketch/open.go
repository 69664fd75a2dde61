package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"path/filepath"

	"github.com/example/shapesketch/internal/canvas"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/source"
	"github.com/example/shapesketch/internal/ui"
)

var (
	loadImageFn  = source.LoadImage
	grabScreenFn = source.GrabScreen
)

// openCmd edits an existing image file or a screen grab.
type openCmd struct {
	file   string
	screen bool
	*root
	fs *flag.FlagSet
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	o := &openCmd{root: r, fs: fs}
	fs.StringVar(&o.file, "file", "", "image file to edit (png, jpeg, gif, bmp, tiff, webp)")
	fs.BoolVar(&o.screen, "screen", false, "edit a grab of the whole screen")
	fs.Usage = usageFunc(o)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.file == "" && fs.NArg() == 1 {
		o.file = fs.Arg(0)
	}
	if o.file != "" && o.screen {
		return nil, errors.New("-file and -screen cannot be used together")
	}
	return o, nil
}

func (o *openCmd) load() (*image.RGBA, string, error) {
	switch {
	case o.screen:
		img, err := grabScreenFn()
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, "screen", nil
	case o.file != "":
		img, err := loadImageFn(o.file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load image: %w", err)
		}
		return img, filepath.Base(o.file), nil
	}
	return nil, "", &UsageError{of: o}
}

func (o *openCmd) Run() error {
	img, name, err := o.load()
	if err != nil {
		return err
	}
	cfg := o.cfg()
	c, err := canvas.FromImage(img, cfg.Canvas.Background)
	if err != nil {
		return fmt.Errorf("create canvas: %w", err)
	}
	exp := ui.NewExporter(cfg.Clipboard.Crop, o.notify())
	sess := session.New(c, sessionOptions(cfg, exp.Crop)...)
	o.show(ui.NewEditor(fmt.Sprintf("%s - %s", o.Program(), name), sess), ui.WithCrops(exp.Crops()))
	return nil
}
