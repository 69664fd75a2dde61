// Package theme holds the window palette.
package theme

import (
	"image/color"
	"sort"
)

// Theme defines the colours drawn around the canvas.
type Theme struct {
	Name string

	Backdrop   color.RGBA // area outside the scaled canvas
	StatusBar  color.RGBA
	StatusText color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:       "default",
		Backdrop:   color.RGBA{48, 48, 48, 255},
		StatusBar:  color.RGBA{230, 230, 230, 255},
		StatusText: color.RGBA{0, 0, 0, 255},
	}
}

// Dark returns a theme with a dark status bar.
func Dark() *Theme {
	return &Theme{
		Name:       "dark",
		Backdrop:   color.RGBA{16, 16, 16, 255},
		StatusBar:  color.RGBA{40, 40, 40, 255},
		StatusText: color.RGBA{220, 220, 220, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"dark":    Dark,
}

// Names lists the built in themes.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for n := range builtin {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
