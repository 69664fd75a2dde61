package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/example/shapesketch/internal/canvas"
	"github.com/example/shapesketch/internal/config"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/ui"
)

// drawCmd opens a blank canvas for drawing.
type drawCmd struct {
	width      int
	height     int
	background string
	colorSpec  string
	thickness  int
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	cfg := r.cfg()
	d := &drawCmd{root: r, fs: fs}
	fs.IntVar(&d.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&d.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&d.background, "background", "", "canvas colour as a name or #RRGGBB (default from config)")
	fs.StringVar(&d.colorSpec, "color", "", "stroke colour; auto uses the inverse of the background (default from config)")
	fs.IntVar(&d.thickness, "thickness", cfg.Draw.Thickness, "stroke width in pixels")
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

// canvasSettings resolves the flags against the config. Invalid values are
// reported and replaced by the stock defaults.
func (d *drawCmd) canvasSettings() (width, height int, bg color.RGBA) {
	defaults := config.New().Canvas
	width, height = d.width, d.height
	if width <= 0 || height <= 0 {
		log.Printf("warning: invalid canvas size %dx%d, using %dx%d", width, height, defaults.Width, defaults.Height)
		width, height = defaults.Width, defaults.Height
	}
	bg = d.cfg().Canvas.Background
	if spec := strings.TrimSpace(d.background); spec != "" {
		c, err := config.ParseColor(spec)
		if err != nil {
			log.Printf("warning: invalid background %q: %v, using white", spec, err)
			c = defaults.Background
		}
		bg = c
	}
	bg.A = 255
	return width, height, bg
}

// applyStroke overrides the stroke settings of cfg with the flags.
func (d *drawCmd) applyStroke(cfg *config.Config) {
	if d.thickness > 0 {
		cfg.Draw.Thickness = d.thickness
	}
	spec := strings.ToLower(strings.TrimSpace(d.colorSpec))
	switch spec {
	case "":
	case "auto":
		cfg.Draw.Color = color.RGBA{}
	default:
		c, err := config.ParseColor(spec)
		if err != nil {
			log.Printf("warning: invalid color %q: %v, using auto", spec, err)
			cfg.Draw.Color = color.RGBA{}
			return
		}
		c.A = 255
		cfg.Draw.Color = c
	}
}

func (d *drawCmd) Run() error {
	width, height, bg := d.canvasSettings()
	c, err := canvas.New(width, height, bg)
	if err != nil {
		return fmt.Errorf("create canvas: %w", err)
	}
	cfg := *d.cfg()
	d.applyStroke(&cfg)
	exp := ui.NewExporter(cfg.Clipboard.Crop, d.notify())
	sess := session.New(c, sessionOptions(&cfg, exp.Crop)...)
	d.show(ui.NewEditor(fmt.Sprintf("%s - draw", d.Program()), sess), ui.WithCrops(exp.Crops()))
	return nil
}
