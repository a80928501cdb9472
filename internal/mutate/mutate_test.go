package mutate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/mutate"
	"github.com/drawshapes/drawshapes/internal/shape"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func square() *shape.Rect {
	r := shape.NewRect(geom.Pt(0, 0))
	r.B, r.C, r.D = geom.Pt(0, 10), geom.Pt(10, 0), geom.Pt(10, 10)
	r.IsNew = false
	return r
}

func corners(r *shape.Rect) [4]geom.Point {
	return [4]geom.Point{r.A, r.B, r.C, r.D}
}

func TestBuildRect(t *testing.T) {
	r := shape.NewRect(geom.Pt(0, 0))
	mutate.BuildRect(r, geom.Pt(10, 20))
	diff(t, [4]geom.Point{geom.Pt(0, 0), geom.Pt(0, 20), geom.Pt(10, 0), geom.Pt(10, 20)}, corners(r))

	// Re-derived from the anchor, not accumulated.
	mutate.Grow(r, geom.Pt(-5, 3))
	diff(t, [4]geom.Point{geom.Pt(0, 0), geom.Pt(0, 3), geom.Pt(-5, 0), geom.Pt(-5, 3)}, corners(r))
}

func TestRectRigidTranslation(t *testing.T) {
	r := square()
	mutate.Apply(r, hittest.Hit{Target: hittest.TargetShape, Kind: shape.KindRect, ID: r.ID}, geom.V(5, 5))
	diff(t, [4]geom.Point{geom.Pt(5, 5), geom.Pt(5, 15), geom.Pt(15, 5), geom.Pt(15, 15)}, corners(r))

	ab := r.B.Sub(r.A)
	ac := r.C.Sub(r.A)
	require.Equal(t, ab.Hypot(), ac.Hypot())
	require.Equal(t, 0.0, ab.X*ac.X+ab.Y*ac.Y)
	require.Equal(t, r.D.Sub(r.C).Hypot(), r.D.Sub(r.B).Hypot())
}

func TestRectEdgeArm(t *testing.T) {
	r := square()
	mutate.Apply(r, hittest.Hit{Target: hittest.TargetEdge, Kind: shape.KindRect, ID: r.ID, Edge: shape.EdgeAB}, geom.V(3, 0))
	diff(t, [4]geom.Point{geom.Pt(3, 0), geom.Pt(3, 10), geom.Pt(10, 0), geom.Pt(10, 10)}, corners(r))

	pairs := map[shape.Edge][4]geom.Point{
		shape.EdgeBD: {geom.Pt(0, 0), geom.Pt(1, 11), geom.Pt(10, 0), geom.Pt(11, 11)},
		shape.EdgeDC: {geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(11, 1), geom.Pt(11, 11)},
		shape.EdgeCA: {geom.Pt(1, 1), geom.Pt(0, 10), geom.Pt(11, 1), geom.Pt(10, 10)},
	}
	for e, want := range pairs {
		r := square()
		mutate.MoveRect(r, shape.HandleNone, e, geom.V(1, 1))
		diff(t, want, corners(r))
	}
}

func TestRectCorner(t *testing.T) {
	r := square()
	mutate.Apply(r, hittest.Hit{Target: hittest.TargetHandle, Kind: shape.KindRect, ID: r.ID, Handle: shape.HandleD}, geom.V(4, -2))
	diff(t, [4]geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 0), geom.Pt(14, 8)}, corners(r))
}

func TestLineMoves(t *testing.T) {
	l := shape.NewLine(geom.Pt(0, 0), geom.Pt(10, 0))

	mutate.MoveLine(l, shape.HandleNone, geom.V(1, 2))
	diff(t, []geom.Point{geom.Pt(1, 2), geom.Pt(11, 2)}, l.Decorations())

	mutate.MoveLine(l, shape.HandleStart, geom.V(-1, 0))
	diff(t, []geom.Point{geom.Pt(0, 2), geom.Pt(11, 2)}, l.Decorations())

	mutate.MoveLine(l, shape.HandleEnd, geom.V(0, 3))
	diff(t, []geom.Point{geom.Pt(0, 2), geom.Pt(11, 5)}, l.Decorations())

	mutate.Grow(l, geom.Pt(7, 7))
	require.Equal(t, geom.Pt(7, 7), l.End)
}

func TestFreehandGrowthThenTranslation(t *testing.T) {
	f := shape.NewFreehand(geom.Pt(0, 0))
	mutate.Grow(f, geom.Pt(1, 1))
	mutate.Grow(f, geom.Pt(2, 2))
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)}, f.Points)

	f.IsNew = false
	mutate.Apply(f, hittest.Hit{Target: hittest.TargetShape, Kind: shape.KindFreehand, ID: f.ID}, geom.V(5, 0))
	diff(t, []geom.Point{geom.Pt(5, 0), geom.Pt(6, 1), geom.Pt(7, 2)}, f.Points)
}

func TestZeroDeltaIsIdentity(t *testing.T) {
	targets := []hittest.Hit{
		{Target: hittest.TargetShape},
		{Target: hittest.TargetHandle, Handle: shape.HandleStart},
		{Target: hittest.TargetHandle, Handle: shape.HandleEnd},
		{Target: hittest.TargetHandle, Handle: shape.HandleA},
		{Target: hittest.TargetHandle, Handle: shape.HandleD},
		{Target: hittest.TargetEdge, Edge: shape.EdgeBD},
	}
	for _, tgt := range targets {
		shapes := []shape.Shape{
			shape.NewLine(geom.Pt(1, 2), geom.Pt(3, 4)),
			square(),
			&shape.Freehand{Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 3)}},
		}
		for _, s := range shapes {
			before := s.Clone()
			mutate.Apply(s, tgt, geom.V(0, 0))
			diff(t, before, s)
		}
	}
}

func TestFinishDoesNotRepeatLastSample(t *testing.T) {
	f := shape.NewFreehand(geom.Pt(0, 0))
	mutate.Grow(f, geom.Pt(1, 1))
	mutate.Finish(f, geom.Pt(1, 1))
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, f.Points)

	mutate.Finish(f, geom.Pt(4, 4))
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(4, 4)}, f.Points)

	r := shape.NewRect(geom.Pt(0, 0))
	mutate.Finish(r, geom.Pt(2, 2))
	require.Equal(t, geom.Pt(2, 2), r.D)
}
