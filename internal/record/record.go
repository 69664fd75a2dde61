// Package record writes annotated frames to timestamped video files.
package record

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultDir   = "Records"
	DefaultFPS   = 60
	DefaultCodec = "XVID"
)

// ErrNotRecording is returned by Write when no recording is active.
var ErrNotRecording = errors.New("not recording")

// State is the recorder state.
type State int

const (
	Idle State = iota
	Recording
	Paused
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	}
	return "idle"
}

// Sink receives encoded frames.
type Sink interface {
	Write(frame *image.RGBA) error
	Close() error
}

// Opener creates a sink for a new file.
type Opener func(path string, fps float64, width, height int) (Sink, error)

// Recorder drives a Sink through start, pause, resume and stop.
type Recorder struct {
	dir    string
	fps    float64
	open   Opener
	now    func() time.Time
	onStop func(path string)

	state State
	sink  Sink
	path  string
	size  image.Point
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithDir sets the output directory.
func WithDir(dir string) Option { return func(r *Recorder) { r.dir = dir } }

// WithFPS sets the frame rate written to new files.
func WithFPS(fps float64) Option { return func(r *Recorder) { r.fps = fps } }

// WithOpener replaces the video writer.
func WithOpener(fn Opener) Option { return func(r *Recorder) { r.open = fn } }

// WithClock replaces time.Now for file names.
func WithClock(fn func() time.Time) Option { return func(r *Recorder) { r.now = fn } }

// WithOnStop is called with the file path after a recording is closed.
func WithOnStop(fn func(path string)) Option { return func(r *Recorder) { r.onStop = fn } }

// New creates an idle recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{dir: DefaultDir, fps: DefaultFPS, open: OpenVideoWriter(DefaultCodec), now: time.Now}
	for _, o := range opts {
		o(r)
	}
	if r.fps <= 0 {
		r.fps = DefaultFPS
	}
	if r.dir == "" {
		r.dir = DefaultDir
	}
	return r
}

func (r *Recorder) State() State { return r.state }
func (r *Recorder) Path() string { return r.path }

// FileName returns the name used for a recording started at t.
func FileName(t time.Time) string {
	return "recording_" + t.Format("20060102_150405") + ".avi"
}

// Start opens a new file for frames of the given size. It is a no-op while
// a recording is active.
func (r *Recorder) Start(width, height int) error {
	if r.state != Idle {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}
	path := filepath.Join(r.dir, FileName(r.now()))
	sink, err := r.open(path, r.fps, width, height)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	r.sink, r.path, r.size = sink, path, image.Pt(width, height)
	r.state = Recording
	log.Printf("recording started: %s", path)
	return nil
}

// Pause stops writing frames without closing the file.
func (r *Recorder) Pause() {
	if r.state == Recording {
		r.state = Paused
		log.Printf("recording paused")
	}
}

// Resume continues a paused recording.
func (r *Recorder) Resume() {
	if r.state == Paused {
		r.state = Recording
		log.Printf("recording resumed")
	}
}

// Stop closes the file. It is a no-op when idle.
func (r *Recorder) Stop() error {
	if r.state == Idle {
		return nil
	}
	err := r.sink.Close()
	path := r.path
	r.state, r.sink, r.size = Idle, nil, image.Point{}
	if err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("recording saved: %s", path)
	if r.onStop != nil {
		r.onStop(path)
	}
	return nil
}

// Write appends frame while recording. Frames arriving while paused are
// dropped. Frames of another size than the one the file was opened with
// are skipped.
func (r *Recorder) Write(frame *image.RGBA) error {
	switch r.state {
	case Idle:
		return ErrNotRecording
	case Paused:
		return nil
	}
	if b := frame.Bounds(); b.Dx() != r.size.X || b.Dy() != r.size.Y {
		return fmt.Errorf("frame %dx%d does not match recording %dx%d", b.Dx(), b.Dy(), r.size.X, r.size.Y)
	}
	return r.sink.Write(frame)
}
