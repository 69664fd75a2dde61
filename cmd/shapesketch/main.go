package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/example/shapesketch/internal/config"
	"github.com/example/shapesketch/internal/notify"
	"github.com/example/shapesketch/internal/session"
	"github.com/example/shapesketch/internal/theme"
	"github.com/example/shapesketch/internal/ui"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// runUI is swapped out in tests so no window is opened.
var runUI = ui.Run

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	recordAlerts bool
	copyAlerts   bool
	themeName    string
}

func (r *root) Program() string {
	if r == nil || r.program == "" {
		return "shapesketch"
	}
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

// cfg returns the loaded configuration, or the defaults when none was loaded.
func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) notify() *notify.Notifier {
	if r == nil {
		return nil
	}
	return r.notifier
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("shapesketch", flag.ExitOnError),
		program:  "shapesketch",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.recordAlerts, "notify-record", cfg.Notify.Record, "show a desktop notification when a recording is saved")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying a crop to the clipboard")
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "window theme: a built in name ("+strings.Join(theme.Names(), ", ")+"), a file or a name under ~/.config/shapesketch/themes")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventRecord, r.recordAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "live":
		cmd, err = parseLiveCmd(subArgs, r)
	case "detect":
		cmd, err = parseDetectCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// show runs ctrl in a window using the selected theme.
func (r *root) show(ctrl ui.Controller, opts ...ui.Option) {
	name := ""
	if r != nil {
		name = r.themeName
	}
	th, err := theme.NewLoader().Load(name)
	if err != nil {
		log.Printf("warning: %v, using the default theme", err)
		th = theme.Default()
	}
	runUI(ctrl, append(opts, ui.WithTheme(th))...)
}

// sessionOptions maps the drawing configuration onto session options.
func sessionOptions(cfg *config.Config, onCrop session.CropHandler) []session.Option {
	opts := []session.Option{
		session.WithThickness(cfg.Draw.Thickness),
		session.WithEraserSize(cfg.Eraser.Size),
		session.WithMaxHistory(cfg.History.Max),
	}
	if cfg.Draw.Color.A != 0 {
		opts = append(opts, session.WithColor(cfg.Draw.Color))
	}
	if onCrop != nil {
		opts = append(opts, session.WithCropHandler(onCrop))
	}
	return opts
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
