// Package mutate applies drag motion to shapes. Existing shapes are moved
// by a per-sample delta according to the armed target; shapes still being
// drawn grow towards the live pointer instead.
package mutate

import (
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// Apply moves the part of s named by target by d. A zero delta leaves s
// unchanged.
func Apply(s shape.Shape, target hittest.Hit, d geom.Vec) {
	switch v := s.(type) {
	case *shape.Line:
		MoveLine(v, target.Handle, d)
	case *shape.Rect:
		MoveRect(v, target.Handle, target.Edge, d)
	case *shape.Freehand:
		MoveFreehand(v, d)
	}
}

// MoveLine translates the pinned endpoint, or both when h is HandleNone.
func MoveLine(l *shape.Line, h shape.Handle, d geom.Vec) {
	switch h {
	case shape.HandleStart:
		l.Start = l.Start.Translate(d)
	case shape.HandleEnd:
		l.End = l.End.Translate(d)
	default:
		l.Start = l.Start.Translate(d)
		l.End = l.End.Translate(d)
	}
}

// MoveRect translates a single corner when h names one, the two corners of
// edge e when it is set, and all four corners otherwise.
func MoveRect(r *shape.Rect, h shape.Handle, e shape.Edge, d geom.Vec) {
	if c := r.Corner(h); c != nil {
		*c = c.Translate(d)
		return
	}
	if e != shape.EdgeNone {
		h1, h2 := e.Corners()
		c1, c2 := r.Corner(h1), r.Corner(h2)
		*c1 = c1.Translate(d)
		*c2 = c2.Translate(d)
		return
	}
	r.A = r.A.Translate(d)
	r.B = r.B.Translate(d)
	r.C = r.C.Translate(d)
	r.D = r.D.Translate(d)
}

// MoveFreehand translates every point of the stroke.
func MoveFreehand(f *shape.Freehand, d geom.Vec) {
	for i := range f.Points {
		f.Points[i] = f.Points[i].Translate(d)
	}
}

// Grow extends a shape that is still being drawn towards p.
func Grow(s shape.Shape, p geom.Point) {
	switch v := s.(type) {
	case *shape.Line:
		v.End = p
	case *shape.Rect:
		BuildRect(v, p)
	case *shape.Freehand:
		v.Points = append(v.Points, p)
	}
}

// BuildRect re-derives the rectangle spanned by the anchor corner A and p.
// The result is always axis-aligned.
func BuildRect(r *shape.Rect, p geom.Point) {
	r.D = p
	r.B = geom.Pt(r.A.X, p.Y)
	r.C = geom.Pt(p.X, r.A.Y)
}

// Finish applies the last pointer sample of a drawing gesture. It is Grow,
// except that a freehand stroke does not get a second copy of a point it
// already ends with.
func Finish(s shape.Shape, p geom.Point) {
	if f, ok := s.(*shape.Freehand); ok && len(f.Points) > 0 && f.Points[len(f.Points)-1] == p {
		return
	}
	Grow(s, p)
}
