// Package desktop is a fyne front-end for the shape engine.
package desktop

import (
	"image/color"
	"log/slog"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/render"
)

// Board is a widget that feeds taps and drags to an engine and paints the
// compiled scene. It is the engine's renderer.
type Board struct {
	widget.BaseWidget

	mu     sync.RWMutex
	eng    *engine.Engine
	style  render.Style
	images render.ImageSource
	cmds   []render.DrawCommand
	scene  engine.Scene

	dragging bool
	last     geom.Point

	// OnChange is called after every render with the new scene.
	OnChange func(engine.Scene)
}

var (
	_ fyne.Widget    = (*Board)(nil)
	_ fyne.Tappable  = (*Board)(nil)
	_ fyne.Draggable = (*Board)(nil)
)

// NewBoard creates a board with its own engine. images resolves background
// assets and may be nil.
func NewBoard(style render.Style, images render.ImageSource, opts ...engine.Option) *Board {
	b := &Board{style: style, images: images}
	b.eng = engine.NewEngine(append(opts, engine.WithRenderer(b))...)
	b.scene = b.eng.Scene()
	b.cmds = render.Compile(b.scene, style)
	b.ExtendBaseWidget(b)
	return b
}

// Engine returns the board's engine. Calls that change the scene must
// happen on the fyne main goroutine.
func (b *Board) Engine() *engine.Engine { return b.eng }

// Scene returns the last rendered scene.
func (b *Board) Scene() engine.Scene {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scene
}

// Commands returns the current display list.
func (b *Board) Commands() []render.DrawCommand {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cmds
}

// Render implements engine.Renderer.
func (b *Board) Render(sc engine.Scene) {
	cmds := render.Compile(sc, b.style)
	b.mu.Lock()
	b.cmds = cmds
	b.scene = sc
	b.mu.Unlock()

	b.Refresh()
	if b.OnChange != nil {
		b.OnChange(sc)
	}
}

func (b *Board) Tapped(e *fyne.PointEvent) {
	b.eng.Tap(point(e.Position))
}

// Dragged reports the current pointer position with the delta since the
// previous event, so the first event carries the gesture's start.
func (b *Board) Dragged(e *fyne.DragEvent) {
	p := point(e.Position)
	if !b.dragging {
		b.dragging = true
		b.eng.DragBegin(p.Translate(geom.V(-float64(e.Dragged.DX), -float64(e.Dragged.DY))))
	}
	b.eng.DragChange(p)
	b.last = p
}

func (b *Board) DragEnd() {
	if !b.dragging {
		return
	}
	b.dragging = false
	b.eng.DragEnd(b.last)
}

func point(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.Refresh()
	return r
}

type boardRenderer struct {
	board   *Board
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Refresh() {
	r.objects = Objects(r.board.Commands(), r.board.images)
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(fyne.Size) {}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.board.style.Width), float32(r.board.style.Height))
}

func (r *boardRenderer) Destroy() {}

// Objects converts a display list into fyne canvas objects. Full circles
// become canvas.Circle; every other path is flattened into line segments.
func Objects(cmds []render.DrawCommand, images render.ImageSource) []fyne.CanvasObject {
	var objs []fyne.CanvasObject
	for _, c := range cmds {
		switch c.Op {
		case "fill":
			rect := canvas.NewRectangle(paint(c.Fill, c.Opacity))
			rect.Resize(fyne.NewSize(float32(c.Width), float32(c.Height)))
			objs = append(objs, rect)

		case "image":
			if images == nil {
				continue
			}
			src, err := images.Image(c.ImageAssetID)
			if err != nil {
				slog.Warn("background unavailable", "asset", c.ImageAssetID, "error", err)
				continue
			}
			img := canvas.NewImageFromImage(src)
			img.FillMode = canvas.ImageFillContain
			img.Resize(fyne.NewSize(float32(c.Width), float32(c.Height)))
			objs = append(objs, img)

		case "path":
			if cx, cy, radius, ok := fullCircle(c.Path); ok {
				circ := canvas.NewCircle(paint(c.Fill, c.Opacity))
				circ.StrokeColor = paint(c.Stroke, c.Opacity)
				circ.StrokeWidth = float32(c.StrokeWidth)
				circ.Move(fyne.NewPos(float32(cx-radius), float32(cy-radius)))
				circ.Resize(fyne.NewSize(float32(2*radius), float32(2*radius)))
				objs = append(objs, circ)
				continue
			}
			if c.Stroke == "" {
				continue
			}
			stroke := paint(c.Stroke, c.Opacity)
			for _, pl := range render.Flatten(c.Path) {
				pts := pl.Points
				if pl.Closed && len(pts) > 1 {
					pts = append(pts, pts[0])
				}
				for i := 1; i < len(pts); i++ {
					seg := canvas.NewLine(stroke)
					seg.StrokeWidth = float32(c.StrokeWidth)
					seg.Position1 = fyne.NewPos(float32(pts[i-1].X), float32(pts[i-1].Y))
					seg.Position2 = fyne.NewPos(float32(pts[i].X), float32(pts[i].Y))
					objs = append(objs, seg)
				}
			}
		}
	}
	return objs
}

func fullCircle(path []render.PathCommand) (cx, cy, r float64, ok bool) {
	if len(path) != 1 || len(path[0]) < 6 || path[0][0] != "A" {
		return 0, 0, 0, false
	}
	cx, _ = path[0][1].(float64)
	cy, _ = path[0][2].(float64)
	r, _ = path[0][3].(float64)
	start, _ := path[0][4].(float64)
	end, _ := path[0][5].(float64)
	return cx, cy, r, math.Abs(end-start) >= 2*math.Pi
}

// paint resolves a command color. Empty or invalid colors are transparent.
func paint(s string, opacity float64) color.Color {
	if s == "" {
		return color.Transparent
	}
	c, err := render.ParseColor(s)
	if err != nil {
		return color.Transparent
	}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(opacity*255 + 0.5)
	}
	return c
}
