package shape

import (
	"iter"
	"slices"
)

// Collection holds the committed shapes of each kind in insertion order.
type Collection struct {
	Lines     []*Line     `json:"lines"`
	Rects     []*Rect     `json:"rects"`
	Freehands []*Freehand `json:"freehands"`
}

// Add appends s to the slice for its kind.
func (c *Collection) Add(s Shape) {
	switch v := s.(type) {
	case *Line:
		c.Lines = append(c.Lines, v)
	case *Rect:
		c.Rects = append(c.Rects, v)
	case *Freehand:
		c.Freehands = append(c.Freehands, v)
	}
}

// Of yields the shapes of one kind in insertion order.
func (c *Collection) Of(kind Kind) iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		switch kind {
		case KindLine:
			for _, l := range c.Lines {
				if !yield(l) {
					return
				}
			}
		case KindRect:
			for _, r := range c.Rects {
				if !yield(r) {
					return
				}
			}
		case KindFreehand:
			for _, f := range c.Freehands {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// All yields every shape: lines, then rectangles, then freehands.
func (c *Collection) All() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, k := range []Kind{KindLine, KindRect, KindFreehand} {
			for s := range c.Of(k) {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Find returns the shape of the given kind and id, or nil.
func (c *Collection) Find(kind Kind, id string) Shape {
	for s := range c.Of(kind) {
		if s.ShapeBase().ID == id {
			return s
		}
	}
	return nil
}

// Delete removes the shape with the given kind and id, keeping the order of
// the rest. It reports whether anything was removed.
func (c *Collection) Delete(kind Kind, id string) bool {
	n := c.Len()
	switch kind {
	case KindLine:
		c.Lines = slices.DeleteFunc(c.Lines, func(l *Line) bool { return l.ID == id })
	case KindRect:
		c.Rects = slices.DeleteFunc(c.Rects, func(r *Rect) bool { return r.ID == id })
	case KindFreehand:
		c.Freehands = slices.DeleteFunc(c.Freehands, func(f *Freehand) bool { return f.ID == id })
	}
	return c.Len() < n
}

// DeselectAll clears the Selected flag on every shape.
func (c *Collection) DeselectAll() {
	for s := range c.All() {
		s.ShapeBase().Selected = false
	}
}

// Len returns the total number of shapes.
func (c *Collection) Len() int {
	return len(c.Lines) + len(c.Rects) + len(c.Freehands)
}

// Clone returns a deep copy that shares no points with c.
func (c *Collection) Clone() Collection {
	out := Collection{
		Lines:     make([]*Line, 0, len(c.Lines)),
		Rects:     make([]*Rect, 0, len(c.Rects)),
		Freehands: make([]*Freehand, 0, len(c.Freehands)),
	}
	for s := range c.All() {
		out.Add(s.Clone())
	}
	return out
}
