package render

import (
	"encoding/json"
	"math"

	"github.com/drawshapes/drawshapes/internal/geom"
)

// Polyline is one flattened subpath.
type Polyline struct {
	Points []geom.Point
	Closed bool
}

// arcStep is the target chord length when flattening arcs.
const arcStep = 2.0

// Flatten converts path commands into polylines, following Canvas2D
// semantics: an arc is joined to the current point by a straight segment,
// and a closed subpath leaves the pen at its first point.
func Flatten(path []PathCommand) []Polyline {
	var (
		out []Polyline
		cur *Polyline
	)
	begin := func(p geom.Point) {
		out = append(out, Polyline{Points: []geom.Point{p}})
		cur = &out[len(out)-1]
	}
	for _, c := range path {
		if len(c) == 0 {
			continue
		}
		op, _ := c[0].(string)
		switch op {
		case "M":
			if len(c) >= 3 {
				begin(geom.Pt(num(c[1]), num(c[2])))
			}
		case "L":
			if len(c) < 3 {
				continue
			}
			p := geom.Pt(num(c[1]), num(c[2]))
			if cur == nil {
				begin(p)
			} else {
				cur.Points = append(cur.Points, p)
			}
		case "A":
			if len(c) < 6 {
				continue
			}
			ccw := len(c) > 6 && truthy(c[6])
			pts, full := arcPoints(geom.Pt(num(c[1]), num(c[2])), num(c[3]), num(c[4]), num(c[5]), ccw)
			if cur == nil || full {
				begin(pts[0])
				pts = pts[1:]
			}
			cur.Points = append(cur.Points, pts...)
			if full {
				cur.Closed = true
				cur = nil
			}
		case "Z":
			if cur != nil {
				cur.Closed = true
				start := cur.Points[0]
				cur = nil
				begin(start)
			}
		}
	}
	// Drop the single-point subpaths a trailing "Z" or lone "M" leaves.
	kept := out[:0]
	for _, pl := range out {
		if len(pl.Points) > 1 {
			kept = append(kept, pl)
		}
	}
	return kept
}

// arcPoints samples an arc. It reports whether the arc is a full circle.
func arcPoints(c geom.Point, r, start, end float64, ccw bool) ([]geom.Point, bool) {
	sweep := end - start
	full := math.Abs(sweep) >= 2*math.Pi
	switch {
	case full && ccw:
		sweep = -2 * math.Pi
	case full:
		sweep = 2 * math.Pi
	case ccw:
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	default:
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	n := int(math.Ceil(math.Abs(sweep) * r / arcStep))
	n = max(4, min(n, 256))
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		pts = append(pts, geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a)))
	}
	return pts, full
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	}
	return false
}
