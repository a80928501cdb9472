package hittest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/shape"
)

var resolver = hittest.NewResolver(hittest.DefaultTolerances())

func committedRect(a, d geom.Point) *shape.Rect {
	r := shape.NewRect(a)
	r.B = geom.Pt(a.X, d.Y)
	r.C = geom.Pt(d.X, a.Y)
	r.D = d
	r.IsNew = false
	return r
}

func TestLineBodyHit(t *testing.T) {
	var col shape.Collection
	l := shape.NewLine(geom.Pt(0, 0), geom.Pt(100, 0))
	col.Add(l)

	for _, p := range []geom.Point{geom.Pt(50, 3), geom.Pt(50, 5), geom.Pt(10, 5), geom.Pt(90, -4)} {
		h := resolver.FindShapeNear(&col, shape.KindLine, p)
		require.Equal(t, hittest.Hit{Target: hittest.TargetShape, Kind: shape.KindLine, ID: l.ID}, h, "tap %v", p)
	}

	require.Equal(t, hittest.None, resolver.FindShapeNear(&col, shape.KindLine, geom.Pt(50, 100)))
	require.False(t, resolver.FindShapeNear(&col, shape.KindRect, geom.Pt(50, 0)).Found())
}

func TestBodyHitUsesInsertionOrder(t *testing.T) {
	var col shape.Collection
	first := shape.NewLine(geom.Pt(0, 0), geom.Pt(100, 0))
	second := shape.NewLine(geom.Pt(0, 1), geom.Pt(100, 1))
	col.Add(first)
	col.Add(second)

	h := resolver.FindShapeNear(&col, shape.KindLine, geom.Pt(50, 1))
	require.Equal(t, first.ID, h.ID)
}

func TestRectBodyHit(t *testing.T) {
	var col shape.Collection
	r := committedRect(geom.Pt(0, 0), geom.Pt(100, 100))
	col.Add(r)

	require.Equal(t, r.ID, resolver.FindShapeNear(&col, shape.KindRect, geom.Pt(0, 50)).ID)
	require.Equal(t, r.ID, resolver.FindShapeNear(&col, shape.KindRect, geom.Pt(52, 101)).ID)
	require.False(t, resolver.FindShapeNear(&col, shape.KindRect, geom.Pt(50, 50)).Found())
}

func TestFreehandBodyHitIsPointwise(t *testing.T) {
	var col shape.Collection
	f := shape.NewFreehand(geom.Pt(0, 0))
	f.Points = append(f.Points, geom.Pt(100, 0))
	col.Add(f)

	require.Equal(t, f.ID, resolver.FindShapeNear(&col, shape.KindFreehand, geom.Pt(10, 10)).ID)
	// Between samples, far from both of them.
	require.False(t, resolver.FindShapeNear(&col, shape.KindFreehand, geom.Pt(50, 0)).Found())
}

func TestLineHandles(t *testing.T) {
	var col shape.Collection
	far := shape.NewLine(geom.Pt(500, 500), geom.Pt(600, 600))
	l := shape.NewLine(geom.Pt(0, 0), geom.Pt(100, 0))
	col.Add(far)
	col.Add(l)

	h := resolver.FindHandleNear(&col, shape.KindLine, geom.Pt(3, 3))
	require.Equal(t, hittest.Hit{Target: hittest.TargetHandle, Kind: shape.KindLine, ID: l.ID, Handle: shape.HandleStart}, h)

	h = resolver.FindHandleNear(&col, shape.KindLine, geom.Pt(90, 5))
	require.Equal(t, shape.HandleEnd, h.Handle)
	require.Equal(t, l.ID, h.ID)

	require.False(t, resolver.FindHandleNear(&col, shape.KindLine, geom.Pt(50, 0)).Found())
}

func TestRectHandleOrder(t *testing.T) {
	var col shape.Collection
	r := committedRect(geom.Pt(0, 0), geom.Pt(10, 10))
	col.Add(r)

	// Within reach of every corner; A is tested first.
	h := resolver.FindHandleNear(&col, shape.KindRect, geom.Pt(5, 5))
	require.Equal(t, shape.HandleA, h.Handle)

	big := committedRect(geom.Pt(0, 0), geom.Pt(100, 100))
	col = shape.Collection{}
	col.Add(big)
	require.Equal(t, shape.HandleB, resolver.FindHandleNear(&col, shape.KindRect, geom.Pt(2, 98)).Handle)
	require.Equal(t, shape.HandleC, resolver.FindHandleNear(&col, shape.KindRect, geom.Pt(98, 2)).Handle)
	require.Equal(t, shape.HandleD, resolver.FindHandleNear(&col, shape.KindRect, geom.Pt(99, 99)).Handle)
}

func TestFreehandHasNoHandles(t *testing.T) {
	var col shape.Collection
	col.Add(shape.NewFreehand(geom.Pt(0, 0)))
	require.Equal(t, hittest.None, resolver.FindHandleNear(&col, shape.KindFreehand, geom.Pt(0, 0)))
}

func TestEdgeHit(t *testing.T) {
	var col shape.Collection
	r := committedRect(geom.Pt(0, 0), geom.Pt(100, 100))
	col.Add(r)

	cases := map[geom.Point]shape.Edge{
		geom.Pt(0, 50):   shape.EdgeAB,
		geom.Pt(50, 100): shape.EdgeBD,
		geom.Pt(100, 50): shape.EdgeDC,
		geom.Pt(50, 0):   shape.EdgeCA,
	}
	for p, want := range cases {
		h := resolver.FindEdgeNear(&col, p)
		require.Equal(t, hittest.Hit{Target: hittest.TargetEdge, Kind: shape.KindRect, ID: r.ID, Edge: want}, h, "tap %v", p)
	}
	require.False(t, resolver.FindEdgeNear(&col, geom.Pt(50, 50)).Found())
}

func TestResolveOrder(t *testing.T) {
	var col shape.Collection
	r := committedRect(geom.Pt(0, 0), geom.Pt(100, 100))
	col.Add(r)

	h := resolver.Resolve(&col, shape.KindRect, hittest.RectShape, geom.Pt(1, 1))
	require.Equal(t, hittest.TargetHandle, h.Target)
	require.Equal(t, shape.HandleA, h.Handle)

	h = resolver.Resolve(&col, shape.KindRect, hittest.RectShape, geom.Pt(0, 50))
	require.Equal(t, hittest.TargetShape, h.Target)

	h = resolver.Resolve(&col, shape.KindRect, hittest.RectArm, geom.Pt(0, 50))
	require.Equal(t, hittest.TargetEdge, h.Target)
	require.Equal(t, shape.EdgeAB, h.Edge)

	// Corners still win in arm mode.
	h = resolver.Resolve(&col, shape.KindRect, hittest.RectArm, geom.Pt(99, 1))
	require.Equal(t, hittest.TargetHandle, h.Target)
	require.Equal(t, shape.HandleC, h.Handle)

	require.Equal(t, hittest.None, resolver.Resolve(&col, shape.KindRect, hittest.RectShape, geom.Pt(50, 50)))
	require.Equal(t, hittest.None, resolver.Resolve(&col, shape.KindLine, hittest.RectShape, geom.Pt(0, 50)))
}

func TestCustomTolerances(t *testing.T) {
	var col shape.Collection
	col.Add(shape.NewLine(geom.Pt(0, 0), geom.Pt(100, 0)))

	strict := hittest.NewResolver(hittest.Tolerances{Segment: 0.1, Handle: 1, Freehand: 1})
	require.False(t, strict.FindShapeNear(&col, shape.KindLine, geom.Pt(50, 3)).Found())
	require.False(t, strict.FindHandleNear(&col, shape.KindLine, geom.Pt(3, 3)).Found())
}

func TestParseRectMode(t *testing.T) {
	for _, m := range []hittest.RectMode{hittest.RectShape, hittest.RectArm} {
		got, err := hittest.ParseRectMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	_, err := hittest.ParseRectMode("rotate")
	require.Error(t, err)
}
