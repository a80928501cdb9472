package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pdfScale is the raster resolution of a PDF page in pixels per point.
const pdfScale = 2

// PDF writes command lists as a single-page PDF sized to the canvas, one
// point per canvas unit. The page holds the rasterized scene as an image,
// so shapes are not exported as vector paths.
type PDF struct {
	Images ImageSource // nil skips "image" commands
	Scale  float64     // raster pixels per point, 0 means pdfScale
}

// Write renders cmds and writes the document to w.
func (p PDF) Write(w io.Writer, cmds []DrawCommand) error {
	cw, ch, err := canvasSize(cmds)
	if err != nil {
		return err
	}
	scale := p.Scale
	if scale <= 0 {
		scale = pdfScale
	}

	var page bytes.Buffer
	if err := (Raster{Images: p.Images, Scale: scale}).WritePNG(&page, cmds); err != nil {
		return err
	}

	// gofpdf swaps Wd and Ht for "L", so the size is given as-is in "P".
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: cw, Ht: ch},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("drawshapes", true)
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("scene", opts, &page)
	doc.ImageOptions("scene", 0, 0, cw, ch, false, opts, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
