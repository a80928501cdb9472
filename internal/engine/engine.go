package engine

import (
	"log/slog"

	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/mutate"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// State is the coarse interaction state.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateDrawing
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateDrawing:
		return "drawing"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Engine interprets tap and drag gestures against a collection of shapes.
// It owns the collection, the shape being drawn and the target armed by the
// current drag. An Engine is not safe for concurrent use.
type Engine struct {
	shapes   shape.Collection
	resolver hittest.Resolver
	strength float64

	// Mode
	kind     shape.Kind
	rectMode hittest.RectMode

	// Gesture state. drawing is owned by the engine until the gesture ends,
	// then moved into shapes.
	state   State
	drawing shape.Shape
	armed   hittest.Hit
	prev    geom.Point

	selection hittest.Hit

	// Auxiliary panel hints for the front-end
	showDelete  bool
	showOptions bool

	background string

	renderer Renderer
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer sets the renderer invoked after every visible change.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithTolerances overrides the hit-test thresholds.
func WithTolerances(t hittest.Tolerances) Option {
	return func(e *Engine) { e.resolver = hittest.NewResolver(t) }
}

// WithStrength sets the line weight of newly drawn shapes.
func WithStrength(s float64) Option {
	return func(e *Engine) {
		if s > 0 {
			e.strength = s
		}
	}
}

// WithLogger sets the logger for gesture debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine in line mode with an empty canvas.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		resolver:    hittest.NewResolver(hittest.DefaultTolerances()),
		strength:    shape.DefaultStrength,
		kind:        shape.KindLine,
		rectMode:    hittest.RectShape,
		showOptions: true,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Commands (front-end → engine) ---

// Tap selects the shape of the active kind under p, or clears the
// selection when there is none. Taps are ignored while a drag is active.
func (e *Engine) Tap(p geom.Point) {
	if e.active() {
		return
	}

	e.shapes.DeselectAll()
	e.selection = hittest.None

	hit := e.resolver.Body(&e.shapes, e.kind, e.rectMode, p)
	if s := e.find(hit); s != nil {
		s.ShapeBase().Selected = true
		e.selection = hittest.Hit{Target: hittest.TargetShape, Kind: hit.Kind, ID: hit.ID}
		e.showDelete = true
		e.state = StateSelecting
		e.log.Debug("shape selected", "kind", hit.Kind, "id", hit.ID)
	} else {
		e.showDelete = false
		e.state = StateIdle
	}
	e.render()
}

// DragBegin arms the handle, edge or shape under p. When nothing is hit a
// new shape of the active kind is started at p.
func (e *Engine) DragBegin(p geom.Point) {
	if e.active() {
		e.cancel()
	}

	e.shapes.DeselectAll()
	e.selection = hittest.None
	e.showOptions = false
	e.prev = p

	hit := e.resolver.Resolve(&e.shapes, e.kind, e.rectMode, p)
	if s := e.find(hit); s != nil {
		s.ShapeBase().IsNew = false
		s.ShapeBase().Selected = true
		e.armed = hit
		e.state = StateEditing
		e.log.Debug("drag armed", "target", hit.Target, "kind", hit.Kind, "id", hit.ID)
	} else {
		e.drawing = e.newShape(p)
		e.state = StateDrawing
		e.log.Debug("drawing started", "kind", e.kind, "id", e.drawing.ShapeBase().ID)
	}
	e.render()
}

// DragChange moves the armed target by the delta since the previous sample,
// or grows the shape being drawn towards p. It is a no-op when no drag is
// active.
func (e *Engine) DragChange(p geom.Point) {
	s := e.target()
	if s == nil {
		return
	}
	s.ShapeBase().Selected = true
	if e.drawing != nil {
		mutate.Grow(s, p)
	} else {
		mutate.Apply(s, e.armed, p.Sub(e.prev))
	}
	e.prev = p
	e.render()
}

// DragEnd applies the final sample and ends the gesture. A shape being
// drawn is committed to the collection. The touched shape stays
// highlighted and becomes the selection.
func (e *Engine) DragEnd(p geom.Point) {
	s := e.target()
	if s == nil {
		return
	}
	b := s.ShapeBase()
	b.Selected = true
	if e.drawing != nil {
		mutate.Finish(s, p)
		b.IsNew = false
		e.shapes.Add(s)
		e.drawing = nil
		e.log.Debug("shape committed", "kind", s.Kind(), "id", b.ID)
	} else {
		mutate.Apply(s, e.armed, p.Sub(e.prev))
	}

	e.selection = hittest.Hit{Target: hittest.TargetShape, Kind: s.Kind(), ID: b.ID}
	e.armed = hittest.None
	e.state = StateSelecting
	e.showOptions = true
	e.render()
}

// DragCancel ends the gesture without a final sample. A shape being drawn
// is discarded; an edited shape keeps the motion applied so far.
func (e *Engine) DragCancel() {
	if !e.active() {
		return
	}
	e.cancel()
	e.showOptions = true
	e.render()
}

// cancel drops the live gesture without rendering.
func (e *Engine) cancel() {
	if e.drawing != nil {
		e.log.Debug("drawing discarded", "id", e.drawing.ShapeBase().ID)
		e.drawing = nil
		e.state = StateIdle
	} else if s := e.find(e.armed); s != nil {
		e.selection = hittest.Hit{Target: hittest.TargetShape, Kind: s.Kind(), ID: s.ShapeBase().ID}
		e.state = StateSelecting
	} else {
		e.state = StateIdle
	}
	e.armed = hittest.None
}

// DeleteSelected removes the selected shape. It reports whether a shape was
// removed.
func (e *Engine) DeleteSelected() bool {
	if !e.selection.Found() {
		return false
	}
	return e.Delete(e.selection.Kind, e.selection.ID)
}

// Delete removes the committed shape of kind with the given id. Unknown ids
// are a no-op. Any gesture or selection referring to the shape is dropped.
func (e *Engine) Delete(kind shape.Kind, id string) bool {
	if e.armed.Found() && e.armed.Kind == kind && e.armed.ID == id {
		e.armed = hittest.None
		e.state = StateIdle
		e.showOptions = true
	}
	if e.selection.Found() && e.selection.Kind == kind && e.selection.ID == id {
		e.selection = hittest.None
		e.showDelete = false
		if e.state == StateSelecting {
			e.state = StateIdle
		}
	}
	if !e.shapes.Delete(kind, id) {
		return false
	}
	e.log.Debug("shape deleted", "kind", kind, "id", id)
	e.render()
	return true
}

// SetShapeType switches the kind of shape that gestures act on. Choosing
// rectangles resets the rectangle sub-mode to whole-shape moves.
func (e *Engine) SetShapeType(kind shape.Kind) {
	e.switchMode()
	e.kind = kind
	if kind == shape.KindRect {
		e.rectMode = hittest.RectShape
	}
	e.render()
}

// SetRectMode switches to rectangles in the given sub-mode.
func (e *Engine) SetRectMode(mode hittest.RectMode) {
	e.switchMode()
	e.kind = shape.KindRect
	e.rectMode = mode
	e.render()
}

func (e *Engine) switchMode() {
	if e.active() {
		e.cancel()
		e.showOptions = true
	}
	e.showDelete = false
}

// SetBackground sets the background image asset. An empty id clears it.
func (e *Engine) SetBackground(assetID string) {
	e.background = assetID
	e.render()
}

// --- Queries (front-end ← engine) ---

// Scene returns a snapshot of everything a renderer needs. The snapshot
// shares no memory with the engine.
func (e *Engine) Scene() Scene {
	sc := Scene{
		Shapes:      e.shapes.Clone(),
		Background:  e.background,
		State:       e.state,
		ShowDelete:  e.showDelete,
		ShowOptions: e.showOptions,
	}
	if e.drawing != nil {
		sc.Drawing = e.drawing.Clone()
	}
	return sc
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Selection() hittest.Hit { return e.selection }
func (e *Engine) Armed() hittest.Hit { return e.armed }
func (e *Engine) ShapeType() shape.Kind { return e.kind }
func (e *Engine) RectMode() hittest.RectMode { return e.rectMode }
func (e *Engine) Background() string { return e.background }
func (e *Engine) Tolerances() hittest.Tolerances { return e.resolver.Tol }

// Len returns the number of committed shapes.
func (e *Engine) Len() int { return e.shapes.Len() }

// Find returns a copy of the committed shape of kind with the given id.
func (e *Engine) Find(kind shape.Kind, id string) (shape.Shape, bool) {
	s := e.shapes.Find(kind, id)
	if s == nil {
		return nil, false
	}
	return s.Clone(), true
}

// --- internals ---

func (e *Engine) active() bool {
	return e.drawing != nil || e.armed.Found()
}

// target is the shape the live drag acts on, or nil.
func (e *Engine) target() shape.Shape {
	if e.drawing != nil {
		return e.drawing
	}
	return e.find(e.armed)
}

func (e *Engine) find(h hittest.Hit) shape.Shape {
	if !h.Found() {
		return nil
	}
	return e.shapes.Find(h.Kind, h.ID)
}

func (e *Engine) newShape(p geom.Point) shape.Shape {
	var s shape.Shape
	switch e.kind {
	case shape.KindRect:
		s = shape.NewRect(p)
	case shape.KindFreehand:
		s = shape.NewFreehand(p)
	default:
		s = shape.NewLine(p, p)
	}
	s.ShapeBase().Strength = e.strength
	return s
}

func (e *Engine) render() {
	if e.renderer != nil {
		e.renderer.Render(e.Scene())
	}
}
