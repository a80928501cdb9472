// Package render compiles engine scenes into a flat display list and draws
// that list to PNG and PDF.
package render

import (
	"encoding/json"
	"math"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// PathCommand is a single path segment in Canvas2D form:
// ["M", x, y], ["L", x, y], ["A", cx, cy, r, start, end, anticlockwise], ["Z"].
type PathCommand []any

// DrawCommand represents a single drawing operation. A front-end receives a
// list of these and executes them in order on a Canvas2D-like context.
type DrawCommand struct {
	Op           string        `json:"op"`                     // "fill", "image" or "path"
	ObjectID     string        `json:"objectId,omitempty"`     // shape the command belongs to
	Path         []PathCommand `json:"path,omitempty"`         // for "path"
	Fill         string        `json:"fill,omitempty"`         // fill color
	Stroke       string        `json:"stroke,omitempty"`       // stroke color
	StrokeWidth  float64       `json:"strokeWidth,omitempty"`  // stroke width
	Opacity      float64       `json:"opacity,omitempty"`      // global alpha, omitted means 1
	ImageAssetID string        `json:"imageAssetId,omitempty"` // background asset for "image"
	Width        float64       `json:"width,omitempty"`        // area covered by "fill" and "image"
	Height       float64       `json:"height,omitempty"`
}

// Compile generates the draw command buffer for a scene, in painter's
// order: canvas fill, background image, committed lines, rectangles and
// freehand strokes, then the shape being drawn.
func Compile(sc engine.Scene, st Style) []DrawCommand {
	cmds := []DrawCommand{{Op: "fill", Fill: st.Canvas, Width: st.Width, Height: st.Height}}
	if sc.Background != "" {
		cmds = append(cmds, DrawCommand{
			Op:           "image",
			ImageAssetID: sc.Background,
			Width:        st.Width,
			Height:       st.Height,
		})
	}

	for s := range sc.Shapes.All() {
		cmds = compileShape(cmds, s, s.ShapeBase().Selected, st)
	}
	if sc.Drawing != nil {
		cmds = compileShape(cmds, sc.Drawing, true, st)
	}
	return cmds
}

// compileShape appends the commands for one shape: selection circles and
// the white underlay when highlighted, the stroke, then join arcs.
func compileShape(cmds []DrawCommand, s shape.Shape, highlighted bool, st Style) []DrawCommand {
	b := s.ShapeBase()
	outline := outlinePath(s)
	if len(outline) == 0 {
		return cmds
	}

	width := b.Strength
	if highlighted {
		for _, p := range s.Decorations() {
			cmds = append(cmds, DrawCommand{
				Op:          "path",
				ObjectID:    b.ID,
				Path:        []PathCommand{circle(p, st.HandleRadius)},
				Fill:        st.HandleFill,
				Stroke:      st.HandleStroke,
				StrokeWidth: 1,
				Opacity:     st.HandleOpacity,
			})
		}
		cmds = append(cmds, DrawCommand{
			Op:          "path",
			ObjectID:    b.ID,
			Path:        outline,
			Stroke:      st.Underlay,
			StrokeWidth: 3 * width,
		})
		width *= 2
	}
	cmds = append(cmds, DrawCommand{
		Op:          "path",
		ObjectID:    b.ID,
		Path:        outline,
		Stroke:      st.Stroke,
		StrokeWidth: width,
	})

	if r, ok := s.(*shape.Rect); ok {
		if arcs := joinArcs(r, st); len(arcs) > 0 {
			cmds = append(cmds, DrawCommand{
				Op:          "path",
				ObjectID:    b.ID,
				Path:        arcs,
				Stroke:      st.Stroke,
				StrokeWidth: b.Strength / 2,
			})
		}
	}
	return cmds
}

func outlinePath(s shape.Shape) []PathCommand {
	switch v := s.(type) {
	case *shape.Line:
		return []PathCommand{moveTo(v.Start), lineTo(v.End)}
	case *shape.Rect:
		return []PathCommand{moveTo(v.A), lineTo(v.B), lineTo(v.D), lineTo(v.C), {"Z"}}
	case *shape.Freehand:
		if len(v.Points) == 0 {
			return nil
		}
		path := make([]PathCommand, 0, len(v.Points))
		path = append(path, moveTo(v.Points[0]))
		for _, p := range v.Points[1:] {
			path = append(path, lineTo(p))
		}
		return path
	}
	return nil
}

// joinArcs returns an arc around each corner of r, walking A, B, D, C.
// Corners where either adjacent edge is shorter than 2*ArcThreshold are
// skipped.
func joinArcs(r *shape.Rect, st Style) []PathCommand {
	ring := []geom.Point{r.A, r.B, r.D, r.C}
	var path []PathCommand
	for i := range ring {
		start, center, end := ring[i], ring[(i+1)%4], ring[(i+2)%4]
		if geom.ArcRadius(start, center, end) < st.ArcThreshold {
			continue
		}
		from := center.Sub(start).Angle() + math.Pi
		to := end.Sub(center).Angle()
		path = append(path,
			moveTo(center.Translate(geom.V(st.ArcRadius*math.Cos(from), st.ArcRadius*math.Sin(from)))),
			arc(center, st.ArcRadius, from, to, true))
	}
	return path
}

func moveTo(p geom.Point) PathCommand { return PathCommand{"M", p.X, p.Y} }
func lineTo(p geom.Point) PathCommand { return PathCommand{"L", p.X, p.Y} }

func arc(c geom.Point, r, start, end float64, anticlockwise bool) PathCommand {
	return PathCommand{"A", c.X, c.Y, r, start, end, anticlockwise}
}

func circle(c geom.Point, r float64) PathCommand {
	return arc(c, r, 0, 2*math.Pi, false)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
