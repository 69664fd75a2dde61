package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		set, ok := sections[currentSection]
		if !ok {
			continue
		}
		if err := set(cfg, key, value); err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

var sections = map[string]func(*Config, string, string) error{
	"":          setRootField,
	"canvas":    setCanvasField,
	"draw":      setDrawField,
	"history":   setHistoryField,
	"eraser":    setEraserField,
	"record":    setRecordField,
	"camera":    setCameraField,
	"detect":    setDetectField,
	"notify":    setNotifyField,
	"clipboard": setClipboardField,
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "record_dir":
		cfg.RecordDir = value
	case "theme":
		cfg.Theme = value
	}
	return nil
}

func setCanvasField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "width":
		cfg.Canvas.Width, err = parsePositive(key, value)
	case "height":
		cfg.Canvas.Height, err = parsePositive(key, value)
	case "background":
		cfg.Canvas.Background, err = ParseColor(value)
	}
	return err
}

func setDrawField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "color":
		if strings.EqualFold(value, "auto") {
			cfg.Draw.Color = color.RGBA{}
			return nil
		}
		cfg.Draw.Color, err = ParseColor(value)
	case "thickness":
		cfg.Draw.Thickness, err = parsePositive(key, value)
	}
	return err
}

func setHistoryField(cfg *Config, key, value string) error {
	var err error
	if key == "max" {
		cfg.History.Max, err = parsePositive(key, value)
	}
	return err
}

func setEraserField(cfg *Config, key, value string) error {
	var err error
	if key == "size" {
		cfg.Eraser.Size, err = parsePositive(key, value)
	}
	return err
}

func setRecordField(cfg *Config, key, value string) error {
	switch key {
	case "fps":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid fps %q", value)
		}
		cfg.Record.FPS = f
	case "codec":
		if len(value) != 4 {
			return fmt.Errorf("codec must be a four character code, got %q", value)
		}
		cfg.Record.Codec = value
	}
	return nil
}

func setCameraField(cfg *Config, key, value string) error {
	if key != "device" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid device %q", value)
	}
	cfg.Camera.Device = n
	return nil
}

func setDetectField(cfg *Config, key, value string) error {
	d := &cfg.Detect
	floatFields := map[string]*float64{
		"min_area":     &d.MinArea,
		"epsilon":      &d.Epsilon,
		"threshold":    &d.Threshold,
		"param1":       &d.Param1,
		"param2":       &d.Param2,
		"aspect_ratio": &d.AspectRatio,
	}
	if p, ok := floatFields[key]; ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid value for key %s: %q", key, value)
		}
		*p = f
		return nil
	}
	var err error
	switch key {
	case "min_radius":
		d.MinRadius, err = parsePositive(key, value)
	case "max_radius":
		d.MaxRadius, err = parsePositive(key, value)
	}
	return err
}

func setNotifyField(cfg *Config, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "record":
		cfg.Notify.Record = b
	case "copy":
		cfg.Notify.Copy = b
	}
	return nil
}

func setClipboardField(cfg *Config, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	if key == "crop" {
		cfg.Clipboard.Crop = b
	}
	return nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

// ParseColor accepts a colour name or #RRGGBB / #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	hex := strings.TrimPrefix(spec, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}
