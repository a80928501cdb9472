// Package hittest decides which committed shape, handle or rectangle edge a
// touch location refers to. Everything here is a pure function of the
// collection passed in.
package hittest

import (
	"fmt"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// Tolerances are the proximity thresholds, in canvas units.
type Tolerances struct {
	Segment  float64 // slack of the segment detour test for lines and rect edges
	Handle   float64 // radius around line endpoints and rect corners
	Freehand float64 // radius around each sampled freehand point
}

// DefaultTolerances returns the thresholds the touch UI was tuned with.
func DefaultTolerances() Tolerances {
	return Tolerances{Segment: 5, Handle: 20, Freehand: 25}
}

// RectMode is the rectangle editing sub-mode.
type RectMode int

const (
	// RectShape moves whole rectangles and single corners.
	RectShape RectMode = iota
	// RectArm moves one edge (a pair of corners) at a time.
	RectArm
)

func (m RectMode) String() string {
	if m == RectArm {
		return "arm"
	}
	return "shape"
}

// ParseRectMode maps the wire names "shape" and "arm" to a RectMode.
func ParseRectMode(s string) (RectMode, error) {
	switch s {
	case "shape":
		return RectShape, nil
	case "arm":
		return RectArm, nil
	}
	return 0, fmt.Errorf("unknown rect mode %q", s)
}

// Target tags what a Hit refers to.
type Target int

const (
	TargetNone Target = iota
	TargetShape
	TargetHandle
	TargetEdge
)

func (t Target) String() string {
	switch t {
	case TargetShape:
		return "shape"
	case TargetHandle:
		return "handle"
	case TargetEdge:
		return "edge"
	default:
		return "none"
	}
}

// Hit is the result of a resolution. Handle is set only for TargetHandle,
// Edge only for TargetEdge.
type Hit struct {
	Target Target
	Kind   shape.Kind
	ID     string
	Handle shape.Handle
	Edge   shape.Edge
}

// None is the empty result.
var None = Hit{}

// Found reports whether the hit refers to a shape.
func (h Hit) Found() bool {
	return h.Target != TargetNone
}

// Resolver runs hit tests with a fixed set of tolerances.
type Resolver struct {
	Tol Tolerances
}

// NewResolver returns a resolver using tol.
func NewResolver(tol Tolerances) Resolver {
	return Resolver{Tol: tol}
}

// FindShapeNear returns the first shape of kind, in insertion order, whose
// outline passes near p.
func (r Resolver) FindShapeNear(col *shape.Collection, kind shape.Kind, p geom.Point) Hit {
	for s := range col.Of(kind) {
		if r.bodyNear(s, p) {
			return Hit{Target: TargetShape, Kind: kind, ID: s.ShapeBase().ID}
		}
	}
	return None
}

func (r Resolver) bodyNear(s shape.Shape, p geom.Point) bool {
	switch v := s.(type) {
	case *shape.Line:
		return geom.PointOnSegment(v.Start, v.End, p, r.Tol.Segment)
	case *shape.Rect:
		for _, e := range shape.RectEdges {
			a, b := v.Side(e)
			if geom.PointOnSegment(a, b, p, r.Tol.Segment) {
				return true
			}
		}
	case *shape.Freehand:
		for _, q := range v.Points {
			if geom.Near(q, p, r.Tol.Freehand) {
				return true
			}
		}
	}
	return false
}

// FindHandleNear returns the first shape of kind that has a handle within
// the handle radius of p. All handles of a shape are checked before moving
// to the next one. Freehand strokes have no handles.
func (r Resolver) FindHandleNear(col *shape.Collection, kind shape.Kind, p geom.Point) Hit {
	switch kind {
	case shape.KindLine:
		for _, l := range col.Lines {
			for _, h := range shape.LineHandles {
				pt := l.Start
				if h == shape.HandleEnd {
					pt = l.End
				}
				if geom.Near(pt, p, r.Tol.Handle) {
					return Hit{Target: TargetHandle, Kind: kind, ID: l.ID, Handle: h}
				}
			}
		}
	case shape.KindRect:
		for _, rc := range col.Rects {
			for _, h := range shape.RectHandles {
				if geom.Near(*rc.Corner(h), p, r.Tol.Handle) {
					return Hit{Target: TargetHandle, Kind: kind, ID: rc.ID, Handle: h}
				}
			}
		}
	}
	return None
}

// FindEdgeNear returns the first rectangle with an edge passing near p,
// along with that edge. Edges are tried A–B, B–D, D–C, C–A.
func (r Resolver) FindEdgeNear(col *shape.Collection, p geom.Point) Hit {
	for _, rc := range col.Rects {
		for _, e := range shape.RectEdges {
			a, b := rc.Side(e)
			if geom.PointOnSegment(a, b, p, r.Tol.Segment) {
				return Hit{Target: TargetEdge, Kind: shape.KindRect, ID: rc.ID, Edge: e}
			}
		}
	}
	return None
}

// Body is the tap resolution: a body test, or the edge test for
// rectangles in arm mode.
func (r Resolver) Body(col *shape.Collection, kind shape.Kind, mode RectMode, p geom.Point) Hit {
	if kind == shape.KindRect && mode == RectArm {
		return r.FindEdgeNear(col, p)
	}
	return r.FindShapeNear(col, kind, p)
}

// Resolve is the drag-begin resolution: handles first, then the body.
// None means the drag should create a new shape.
func (r Resolver) Resolve(col *shape.Collection, kind shape.Kind, mode RectMode, p geom.Point) Hit {
	if h := r.FindHandleNear(col, kind, p); h.Found() {
		return h
	}
	return r.Body(col, kind, mode, p)
}
