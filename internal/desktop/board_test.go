package desktop

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/drawshapes/drawshapes/internal/asset"
	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/render"
)

func drag(b *Board, from, to fyne.Position) {
	mid := fyne.NewPos((from.X+to.X)/2, (from.Y+to.Y)/2)
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: mid}, Dragged: fyne.NewDelta(mid.X-from.X, mid.Y-from.Y)})
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: to}, Dragged: fyne.NewDelta(to.X-mid.X, to.Y-mid.Y)})
	b.DragEnd()
}

func TestBoardDrawsLine(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	b := NewBoard(render.DefaultStyle(), nil)
	var scenes []engine.Scene
	b.OnChange = func(sc engine.Scene) { scenes = append(scenes, sc) }

	drag(b, fyne.NewPos(100, 100), fyne.NewPos(300, 100))

	sc := b.Scene()
	require.Len(t, sc.Shapes.Lines, 1)
	l := sc.Shapes.Lines[0]
	require.Equal(t, 100.0, l.Start.X)
	require.Equal(t, 300.0, l.End.X)
	require.Equal(t, engine.StateSelecting, sc.State)
	require.Len(t, scenes, 4)

	b.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 101)})
	require.True(t, b.Scene().ShowDelete)

	// DragEnd without a drag does nothing.
	b.DragEnd()
	require.Len(t, b.Scene().Shapes.Lines, 1)
}

func TestObjects(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	eng := engine.NewEngine()
	eng.LoadSample()
	objs := Objects(render.Compile(eng.Scene(), render.DefaultStyle()), nil)

	require.IsType(t, &canvas.Rectangle{}, objs[0])
	var lines int
	for _, o := range objs[1:] {
		if _, ok := o.(*canvas.Line); ok {
			lines++
		}
	}
	require.Greater(t, lines, 48)

	// Selection handles become circles.
	b := NewBoard(render.DefaultStyle(), nil)
	drag(b, fyne.NewPos(10, 10), fyne.NewPos(200, 10))
	var circles []*canvas.Circle
	for _, o := range Objects(b.Commands(), nil) {
		if c, ok := o.(*canvas.Circle); ok {
			circles = append(circles, c)
		}
	}
	require.Len(t, circles, 2)
	require.Equal(t, fyne.NewPos(-10, -10), circles[0].Position())
	require.Equal(t, fyne.NewSize(40, 40), circles[0].Size())
}

func TestWindowToolbar(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(nil)
	defer w.Close()
	ui := NewWindow(w, render.DefaultStyle(), asset.NewStore(t.TempDir()))

	require.True(t, ui.delete.Disabled())
	require.Contains(t, ui.status.Text, "line")

	ui.board.Engine().SetRectMode(hittest.RectArm)
	require.Contains(t, ui.status.Text, "rect (arm)")
}

func TestExport(t *testing.T) {
	cmds := render.Compile(engine.Scene{}, render.DefaultStyle())

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "PNG", cmds, nil))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	require.NoError(t, Export(&buf, "pdf", cmds, nil))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	require.Error(t, Export(&buf, "svg", cmds, nil))
}
