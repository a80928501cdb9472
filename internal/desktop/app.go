package desktop

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/drawshapes/drawshapes/internal/asset"
	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/render"
	"github.com/drawshapes/drawshapes/internal/shape"
)

// Window wires a board to its toolbar and status line.
type Window struct {
	board  *Board
	store  *asset.Store
	status *widget.Label
	delete *widget.Button
	win    fyne.Window
}

// NewWindow builds the editor UI in w. Background photos are kept in store.
func NewWindow(w fyne.Window, style render.Style, store *asset.Store, opts ...engine.Option) *Window {
	ui := &Window{
		board:  NewBoard(style, store, opts...),
		store:  store,
		status: widget.NewLabel(""),
		win:    w,
	}
	ui.delete = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		ui.board.Engine().DeleteSelected()
	})
	ui.board.OnChange = ui.update
	ui.update(ui.board.Scene())

	content := container.NewBorder(ui.toolbar(), container.NewHBox(ui.status, layout.NewSpacer(), ui.delete), nil, nil,
		container.NewScroll(ui.board))
	w.SetContent(content)
	return ui
}

// Board returns the drawing widget.
func (ui *Window) Board() *Board { return ui.board }

func (ui *Window) toolbar() fyne.CanvasObject {
	eng := ui.board.Engine()
	modes := widget.NewRadioGroup([]string{"Line", "Rect", "Arm", "Freehand"}, func(s string) {
		switch s {
		case "Line":
			eng.SetShapeType(shape.KindLine)
		case "Rect":
			eng.SetRectMode(hittest.RectShape)
		case "Arm":
			eng.SetRectMode(hittest.RectArm)
		case "Freehand":
			eng.SetShapeType(shape.KindFreehand)
		}
	})
	modes.Horizontal = true
	modes.Required = true
	modes.SetSelected("Line")

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.FileImageIcon(), ui.openBackground),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { eng.SetBackground("") }),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), eng.LoadSample),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { ui.export("png") }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { ui.export("pdf") }),
	)
	return container.NewHBox(widget.NewLabel("Shape:"), modes, widget.NewSeparator(), actions, layout.NewSpacer())
}

func (ui *Window) update(sc engine.Scene) {
	eng := ui.board.Engine()
	text := fmt.Sprintf("%s | %s", eng.ShapeType(), sc.State)
	if eng.ShapeType() == shape.KindRect {
		text = fmt.Sprintf("%s (%s) | %s", eng.ShapeType(), eng.RectMode(), sc.State)
	}
	ui.status.SetText(text)
	if sc.ShowDelete {
		ui.delete.Enable()
	} else {
		ui.delete.Disable()
	}
}

func (ui *Window) openBackground() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		img, _, err := image.Decode(r)
		if err != nil {
			dialog.ShowError(fmt.Errorf("invalid image: %w", err), ui.win)
			return
		}
		assetID, err := ui.store.Save(img)
		if err != nil {
			dialog.ShowError(err, ui.win)
			return
		}
		slog.Info("background set", "asset", assetID)
		ui.board.Engine().SetBackground(assetID)
	}, ui.win)
}

func (ui *Window) export(format string) {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if err := Export(w, format, ui.board.Commands(), ui.store); err != nil {
			dialog.ShowError(err, ui.win)
			return
		}
		slog.Info("exported", "format", format, "uri", w.URI().String())
	}, ui.win)
	save.SetFileName("drawing." + format)
	save.Show()
}

// Export writes cmds to w as "png" or "pdf".
func Export(w io.Writer, format string, cmds []render.DrawCommand, images render.ImageSource) error {
	switch strings.ToLower(format) {
	case "png":
		return render.Raster{Images: images}.WritePNG(w, cmds)
	case "pdf":
		return render.PDF{Images: images}.Write(w, cmds)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Run opens the editor window and blocks until it is closed.
func Run(style render.Style, store *asset.Store, opts ...engine.Option) {
	a := app.NewWithID("io.drawshapes.desktop")
	w := a.NewWindow("Draw Shapes")
	w.Resize(fyne.NewSize(float32(style.Width), float32(style.Height)+80))
	NewWindow(w, style, store, opts...)
	w.ShowAndRun()
}
