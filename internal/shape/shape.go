// Package shape defines the three drawable shape variants and the ordered
// collection the interaction engine commits them into.
package shape

import (
	"fmt"
	"slices"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/typeid"
)

// DefaultStrength is the line weight given to new shapes.
const DefaultStrength = 2.0

// Kind selects one of the shape variants.
type Kind int

const (
	KindLine Kind = iota
	KindRect
	KindFreehand
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindFreehand:
		return "freehand"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps the wire names "line", "rect" and "freehand" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "line":
		return KindLine, nil
	case "rect":
		return KindRect, nil
	case "freehand":
		return KindFreehand, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// Base is the state shared by every shape variant.
type Base struct {
	ID       string  `json:"id"`
	IsNew    bool    `json:"isNew"`
	Selected bool    `json:"selected"`
	Strength float64 `json:"strength"`
}

func newBase(id string) Base {
	return Base{ID: id, IsNew: true, Selected: true, Strength: DefaultStrength}
}

// Shape is implemented by *Line, *Rect and *Freehand.
type Shape interface {
	Kind() Kind
	ShapeBase() *Base
	// Decorations returns the points that get a selection circle.
	Decorations() []geom.Point
	Clone() Shape
}

// Line is a straight segment.
type Line struct {
	Base
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
}

// NewLine returns a new, in-progress line.
func NewLine(start, end geom.Point) *Line {
	return &Line{Base: newBase(typeid.NewLineID()), Start: start, End: end}
}

func (l *Line) Kind() Kind       { return KindLine }
func (l *Line) ShapeBase() *Base { return &l.Base }

func (l *Line) Decorations() []geom.Point {
	return []geom.Point{l.Start, l.End}
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

// Rect is a quadrilateral. A–B and A–C are the edges meeting at A, D is the
// corner opposite A. It starts out axis-aligned but corner and edge edits
// may turn it into any quadrilateral.
type Rect struct {
	Base
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
	C geom.Point `json:"c"`
	D geom.Point `json:"d"`
}

// NewRect returns a new, in-progress rectangle with all four corners at
// anchor.
func NewRect(anchor geom.Point) *Rect {
	return &Rect{Base: newBase(typeid.NewRectID()), A: anchor, B: anchor, C: anchor, D: anchor}
}

func (r *Rect) Kind() Kind       { return KindRect }
func (r *Rect) ShapeBase() *Base { return &r.Base }

// Decorations walks the outline A, B, D, C.
func (r *Rect) Decorations() []geom.Point {
	return []geom.Point{r.A, r.B, r.D, r.C}
}

func (r *Rect) Clone() Shape {
	c := *r
	return &c
}

// Corner returns a pointer to the corner named by h, or nil if h is not a
// rectangle corner.
func (r *Rect) Corner(h Handle) *geom.Point {
	switch h {
	case HandleA:
		return &r.A
	case HandleB:
		return &r.B
	case HandleC:
		return &r.C
	case HandleD:
		return &r.D
	}
	return nil
}

// Side returns the two end points of edge e.
func (r *Rect) Side(e Edge) (geom.Point, geom.Point) {
	h1, h2 := e.Corners()
	if h1 == HandleNone {
		return geom.Point{}, geom.Point{}
	}
	return *r.Corner(h1), *r.Corner(h2)
}

// Freehand is a stroke through an ordered list of sampled points.
type Freehand struct {
	Base
	Points []geom.Point `json:"points"`
}

// NewFreehand returns a new, in-progress stroke starting at start.
func NewFreehand(start geom.Point) *Freehand {
	return &Freehand{Base: newBase(typeid.NewFreehandID()), Points: []geom.Point{start}}
}

func (f *Freehand) Kind() Kind       { return KindFreehand }
func (f *Freehand) ShapeBase() *Base { return &f.Base }

func (f *Freehand) Decorations() []geom.Point {
	if len(f.Points) == 0 {
		return nil
	}
	return []geom.Point{f.Points[0], f.Points[len(f.Points)-1]}
}

func (f *Freehand) Clone() Shape {
	c := *f
	c.Points = slices.Clone(f.Points)
	return &c
}
