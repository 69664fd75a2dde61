// Package history keeps a bounded undo/redo log of canvas and shape snapshots.
package history

import (
	"image"

	"github.com/example/shapesketch/internal/raster"
	"github.com/example/shapesketch/internal/shape"
)

// DefaultMax is the undo depth used when none is configured.
const DefaultMax = 10

// Entry is one committed state. It is never mutated after NewEntry.
type Entry struct {
	shapes []shape.Shape
	canvas *image.RGBA
	turns  int
}

// NewEntry deep copies canvas and shapes. turns is the canvas orientation in
// clockwise quarter turns at the time of the snapshot.
func NewEntry(canvas *image.RGBA, turns int, shapes []shape.Shape) Entry {
	return Entry{
		shapes: shape.NewList(shapes...).Snapshot(),
		canvas: raster.Clone(canvas),
		turns:  turns,
	}
}

// Canvas returns a copy of the recorded buffer.
func (e Entry) Canvas() *image.RGBA { return raster.Clone(e.canvas) }

func (e Entry) Turns() int { return e.turns }

// Shapes returns a copy of the recorded shapes.
func (e Entry) Shapes() []shape.Shape { return shape.NewList(e.shapes...).Snapshot() }

// Target receives restored state.
type Target interface {
	Restore(buf *image.RGBA, turns int)
	ReplaceAll(shapes []shape.Shape)
}

// Log holds the undo and redo stacks. The oldest undo entry is the sentinel
// state the log was created with until it is evicted.
type Log struct {
	undo  []Entry
	redo  []Entry
	limit int
}

// New seeds a log with the initial state.
func New(limit int, initial Entry) *Log {
	if limit < 1 {
		limit = DefaultMax
	}
	return &Log{undo: []Entry{initial}, limit: limit}
}

// Record pushes e, evicting the oldest entries past the cap, and clears redo.
func (l *Log) Record(e Entry) {
	l.undo = append(l.undo, e)
	for len(l.undo) > l.limit {
		l.undo = l.undo[1:]
	}
	l.redo = nil
}

func (l *Log) CanUndo() bool { return len(l.undo) > 1 }
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }
func (l *Log) Len() int      { return len(l.undo) }
func (l *Log) RedoLen() int  { return len(l.redo) }
func (l *Log) Limit() int    { return l.limit }

// Current returns the newest undo entry.
func (l *Log) Current() Entry { return l.undo[len(l.undo)-1] }

// Undo moves the newest entry to redo and applies the one before it.
func (l *Log) Undo(t Target) bool {
	if !l.CanUndo() {
		return false
	}
	top := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, top)
	apply(t, l.undo[len(l.undo)-1])
	return true
}

// Redo moves the newest redo entry back to undo and applies it.
func (l *Log) Redo(t Target) bool {
	if !l.CanRedo() {
		return false
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, e)
	apply(t, e)
	return true
}

func apply(t Target, e Entry) {
	t.Restore(e.Canvas(), e.turns)
	t.ReplaceAll(e.Shapes())
}
