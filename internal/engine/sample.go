package engine

import (
	"math"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/mutate"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// LoadSample replaces the canvas with a demo: one shape of each kind,
// committed and unselected. Any live gesture and the selection are dropped.
func (e *Engine) LoadSample() {
	e.drawing = nil
	e.armed = hittest.None
	e.selection = hittest.None
	e.state = StateIdle
	e.showDelete = false
	e.showOptions = true
	e.shapes = sampleShapes(e.strength)
	e.render()
}

func sampleShapes(strength float64) shape.Collection {
	var col shape.Collection

	line := shape.NewLine(geom.Pt(80, 80), geom.Pt(360, 160))
	col.Add(line)

	rect := shape.NewRect(geom.Pt(120, 260))
	mutate.BuildRect(rect, geom.Pt(400, 480))
	col.Add(rect)

	// A loose spiral, sampled the way a finger would drag it.
	stroke := shape.NewFreehand(geom.Pt(560, 300))
	for i := 1; i <= 48; i++ {
		a := float64(i) * math.Pi / 12
		r := 4 * float64(i)
		mutate.Grow(stroke, geom.Pt(560+r*math.Cos(a), 300+r*math.Sin(a)))
	}
	col.Add(stroke)

	for s := range col.All() {
		b := s.ShapeBase()
		b.IsNew = false
		b.Selected = false
		b.Strength = strength
	}
	return col
}
