package engine

import "github.com/drawshapes/drawshapes/internal/shape"

// Scene is an immutable snapshot of the canvas handed to renderers.
type Scene struct {
	Shapes shape.Collection
	// Drawing is the shape still being drawn, or nil. It is always
	// highlighted and painted above the committed shapes.
	Drawing    shape.Shape
	Background string
	State      State

	// ShowDelete asks the front-end to surface the delete action for the
	// current selection. ShowOptions is false while a drag is in progress.
	ShowDelete  bool
	ShowOptions bool
}

// Renderer draws scenes. Render is called synchronously after every
// change that affects what is visible.
type Renderer interface {
	Render(Scene)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Scene)

func (f RendererFunc) Render(s Scene) { f(s) }
