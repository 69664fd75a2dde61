package shape

import "image"

// List is the ordered set of committed shapes. Insertion order is paint order.
type List struct {
	items []Shape
}

// NewList returns a list holding copies of shapes.
func NewList(shapes ...Shape) *List {
	l := &List{}
	l.ReplaceAll(shapes)
	return l
}

// Add appends s.
func (l *List) Add(s Shape) {
	l.items = append(l.items, Clone(s))
}

// RemoveIfPresent drops the first shape structurally equal to s.
func (l *List) RemoveIfPresent(s Shape) bool {
	for i, it := range l.items {
		if Equal(it, s) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// DrawAll renders every shape in insertion order.
func (l *List) DrawAll(dst *image.RGBA) {
	for _, s := range l.items {
		s.Render(dst)
	}
}

// Snapshot returns a deep copy of the shapes.
func (l *List) Snapshot() []Shape {
	return cloneAll(l.items)
}

// Shapes is an alias of Snapshot for read-only callers.
func (l *List) Shapes() []Shape { return l.Snapshot() }

// ReplaceAll swaps the whole sequence for copies of shapes.
func (l *List) ReplaceAll(shapes []Shape) {
	l.items = cloneAll(shapes)
}

// Len reports the number of shapes.
func (l *List) Len() int { return len(l.items) }

// Clear removes every shape.
func (l *List) Clear() { l.items = nil }

func cloneAll(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = Clone(s)
	}
	return out
}
