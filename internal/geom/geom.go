// Package geom holds the point arithmetic and proximity tests shared by the
// hit-test resolver, the mutation engine and the renderers.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is a displacement between two points.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// V returns the vector (x, y).
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Translate returns p moved by v.
func (p Point) Translate(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vec {
	return Vec{X: p.X - o.X, Y: p.Y - o.Y}
}

// Midpoint returns the point halfway between p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Distance returns the euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Hypot returns the length of v.
func (v Vec) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the angle of v in radians, in (-π, π].
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero reports whether v is the zero vector.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Distance returns the euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return p.Distance(q)
}

// PointOnSegment reports whether p lies near the segment a–b: the detour
// a→p→b must be less than tolerance longer than a→b. Points just past the
// endpoints along the segment's extension also pass.
func PointOnSegment(a, b, p Point, tolerance float64) bool {
	return math.Abs(a.Distance(p)+p.Distance(b)-a.Distance(b)) < tolerance
}

// Near reports whether p is strictly within radius of q.
func Near(p, q Point, radius float64) bool {
	return p.Distance(q) < radius
}

// ArcRadius returns half the shorter of the two edges p1–p2 and p2–p3
// meeting at the corner p2.
func ArcRadius(p1, p2, p3 Point) float64 {
	return min(p2.Sub(p1).Hypot(), p3.Sub(p2).Hypot()) / 2
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BoundsOf returns the smallest box containing every point.
func BoundsOf(pts ...Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsEmpty checks if the box has zero or negative area.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
