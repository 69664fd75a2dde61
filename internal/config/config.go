package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Canvas holds the blank canvas settings.
type Canvas struct {
	Width      int
	Height     int
	Background color.RGBA
}

// Draw holds stroke settings. A zero Color means the inverse of the canvas
// background.
type Draw struct {
	Color     color.RGBA
	Thickness int
}

// History bounds the undo log.
type History struct {
	Max int
}

// Eraser holds eraser settings.
type Eraser struct {
	Size int
}

// Record holds video recording settings.
type Record struct {
	FPS   float64
	Codec string
}

// Camera selects the capture device.
type Camera struct {
	Device int
}

// Detect holds the shape detector thresholds.
type Detect struct {
	MinArea     float64
	Epsilon     float64
	Threshold   float64
	MinRadius   int
	MaxRadius   int
	Param1      float64
	Param2      float64
	AspectRatio float64
}

// Notify holds notification settings.
type Notify struct {
	Record bool
	Copy   bool
}

// Clipboard holds clipboard settings.
type Clipboard struct {
	Crop bool
}

// Config holds the application configuration.
type Config struct {
	RecordDir string
	Theme     string
	Canvas    Canvas
	Draw      Draw
	History   History
	Eraser    Eraser
	Record    Record
	Camera    Camera
	Detect    Detect
	Notify    Notify
	Clipboard Clipboard
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		RecordDir: "Records",
		Canvas: Canvas{
			Width:      800,
			Height:     800,
			Background: color.RGBA{255, 255, 255, 255},
		},
		Draw:    Draw{Thickness: 2},
		History: History{Max: 10},
		Eraser:  Eraser{Size: 20},
		Record:  Record{FPS: 60, Codec: "XVID"},
		Detect: Detect{
			MinArea:     500,
			Epsilon:     0.02,
			Threshold:   120,
			MinRadius:   10,
			MaxRadius:   100,
			Param1:      100,
			Param2:      30,
			AspectRatio: 0.1,
		},
		Clipboard: Clipboard{Crop: true},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.RecordDir != "" {
		fmt.Fprintf(&sb, "record_dir = %s\n", c.RecordDir)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "background = %s\n", toHex(c.Canvas.Background))
	sb.WriteString("\n")

	sb.WriteString("[draw]\n")
	if c.Draw.Color.A == 0 {
		sb.WriteString("color = auto\n")
	} else {
		fmt.Fprintf(&sb, "color = %s\n", toHex(c.Draw.Color))
	}
	fmt.Fprintf(&sb, "thickness = %d\n", c.Draw.Thickness)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "max = %d\n", c.History.Max)
	sb.WriteString("\n")

	sb.WriteString("[eraser]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Eraser.Size)
	sb.WriteString("\n")

	sb.WriteString("[record]\n")
	fmt.Fprintf(&sb, "fps = %s\n", formatFloat(c.Record.FPS))
	fmt.Fprintf(&sb, "codec = %s\n", c.Record.Codec)
	sb.WriteString("\n")

	sb.WriteString("[camera]\n")
	fmt.Fprintf(&sb, "device = %d\n", c.Camera.Device)
	sb.WriteString("\n")

	sb.WriteString("[detect]\n")
	fmt.Fprintf(&sb, "min_area = %s\n", formatFloat(c.Detect.MinArea))
	fmt.Fprintf(&sb, "epsilon = %s\n", formatFloat(c.Detect.Epsilon))
	fmt.Fprintf(&sb, "threshold = %s\n", formatFloat(c.Detect.Threshold))
	fmt.Fprintf(&sb, "min_radius = %d\n", c.Detect.MinRadius)
	fmt.Fprintf(&sb, "max_radius = %d\n", c.Detect.MaxRadius)
	fmt.Fprintf(&sb, "param1 = %s\n", formatFloat(c.Detect.Param1))
	fmt.Fprintf(&sb, "param2 = %s\n", formatFloat(c.Detect.Param2))
	fmt.Fprintf(&sb, "aspect_ratio = %s\n", formatFloat(c.Detect.AspectRatio))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "record = %v\n", c.Notify.Record)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[clipboard]\n")
	fmt.Fprintf(&sb, "crop = %v\n", c.Clipboard.Crop)

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
