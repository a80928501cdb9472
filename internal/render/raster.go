package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/drawshapes/drawshapes/internal/geom"
)

// ErrNoCanvas is returned when a command list has no leading "fill".
var ErrNoCanvas = errors.New("draw commands do not start with a canvas fill")

// ImageSource opens background images by asset id.
type ImageSource interface {
	Image(assetID string) (image.Image, error)
}

// Raster draws command lists with gg's software renderer.
type Raster struct {
	Images ImageSource // nil skips "image" commands
	Scale  float64     // output pixels per canvas unit, 0 means 1
}

// canvasSize reads the canvas size from the leading "fill" command.
func canvasSize(cmds []DrawCommand) (float64, float64, error) {
	if len(cmds) == 0 || cmds[0].Op != "fill" || cmds[0].Width <= 0 || cmds[0].Height <= 0 {
		return 0, 0, ErrNoCanvas
	}
	return cmds[0].Width, cmds[0].Height, nil
}

// Draw renders cmds. Commands with unparseable colors are skipped; a
// background that cannot be opened is logged and skipped.
func (r Raster) Draw(cmds []DrawCommand) (*image.RGBA, error) {
	dc, err := r.render(cmds)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return toRGBA(dc.Image()), nil
}

// WritePNG renders cmds and encodes the result as PNG.
func (r Raster) WritePNG(w io.Writer, cmds []DrawCommand) error {
	dc, err := r.render(cmds)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// render replays cmds onto a new context. Coordinates are scaled here
// rather than through the context matrix, since gg arcs only transform
// their center.
func (r Raster) render(cmds []DrawCommand) (*gg.Context, error) {
	w, h, err := canvasSize(cmds)
	if err != nil {
		return nil, err
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(w*scale)), int(math.Ceil(h*scale)))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, c := range cmds {
		switch c.Op {
		case "fill":
			if col, err := withOpacity(c.Fill, c.Opacity); err == nil {
				dc.ClearWithColor(ggColor(col))
			}
		case "image":
			r.drawImage(dc, c, scale)
		case "path":
			if err := drawPath(dc, c, scale); err != nil {
				dc.Close()
				return nil, fmt.Errorf("draw %s: %w", c.ObjectID, err)
			}
		}
	}
	return dc, nil
}

func (r Raster) drawImage(dc *gg.Context, c DrawCommand, scale float64) {
	if r.Images == nil {
		return
	}
	src, err := r.Images.Image(c.ImageAssetID)
	if err != nil {
		slog.Warn("background unavailable", "asset", c.ImageAssetID, "error", err)
		return
	}
	sb := src.Bounds()
	fit := geom.Scale(scale, scale).Multiply(geom.Fit(float64(sb.Dx()), float64(sb.Dy()), c.Width, c.Height))
	p0 := fit.Apply(geom.Pt(0, 0))
	p1 := fit.Apply(geom.Pt(float64(sb.Dx()), float64(sb.Dy())))
	dc.DrawImageEx(gg.ImageBufFromImage(src), gg.DrawImageOptions{
		X:             p0.X,
		Y:             p0.Y,
		DstWidth:      p1.X - p0.X,
		DstHeight:     p1.Y - p0.Y,
		Interpolation: gg.InterpBicubic,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

func drawPath(dc *gg.Context, c DrawCommand, scale float64) error {
	if !tracePath(dc, c.Path, scale) {
		return nil
	}
	defer dc.ClearPath()

	if c.Fill != "" {
		if col, err := withOpacity(c.Fill, c.Opacity); err == nil {
			dc.SetRGBA(rgba(col))
			if err := dc.FillPreserve(); err != nil {
				return err
			}
		}
	}
	if c.Stroke != "" && c.StrokeWidth > 0 {
		if col, err := withOpacity(c.Stroke, c.Opacity); err == nil {
			dc.SetRGBA(rgba(col))
			dc.SetLineWidth(c.StrokeWidth * scale)
			if err := dc.StrokePreserve(); err != nil {
				return err
			}
		}
	}
	return nil
}

// tracePath builds path on dc and reports whether anything was added.
// An arc is joined to the current point by a straight segment, as in
// Canvas2D.
func tracePath(dc *gg.Context, path []PathCommand, scale float64) bool {
	dc.ClearPath()
	drawn := false
	to := func(x, y float64) {
		x, y = x*scale, y*scale
		px, py, ok := dc.GetCurrentPoint()
		switch {
		case !ok:
			dc.MoveTo(x, y)
		case math.Hypot(x-px, y-py) > 1e-9:
			dc.LineTo(x, y)
		}
	}
	for _, c := range path {
		if len(c) == 0 {
			continue
		}
		op, _ := c[0].(string)
		switch op {
		case "M":
			if len(c) >= 3 {
				dc.MoveTo(num(c[1])*scale, num(c[2])*scale)
			}
		case "L":
			if len(c) >= 3 {
				to(num(c[1]), num(c[2]))
				drawn = true
			}
		case "A":
			if len(c) < 6 {
				continue
			}
			cx, cy, rad := num(c[1]), num(c[2]), num(c[3])
			start, end := num(c[4]), num(c[5])
			to(cx+rad*math.Cos(start), cy+rad*math.Sin(start))
			if len(c) > 6 && truthy(c[6]) {
				// gg sweeps with increasing angle only; tracing an
				// anticlockwise arc from its far end covers the same pixels.
				dc.MoveTo((cx+rad*math.Cos(end))*scale, (cy+rad*math.Sin(end))*scale)
				start, end = end, start
			}
			if end-start < 2*math.Pi {
				start, end = normalizeSweep(start, end)
			}
			dc.DrawArc(cx*scale, cy*scale, rad*scale, start, end)
			drawn = true
		case "Z":
			dc.ClosePath()
		}
	}
	return drawn
}

// normalizeSweep returns angles with 0 <= end-start < 2π describing the
// same arc.
func normalizeSweep(start, end float64) (float64, float64) {
	sweep := math.Mod(end-start, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	return start, start + sweep
}

func rgba(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func ggColor(c color.NRGBA) gg.RGBA {
	r, g, b, a := rgba(c)
	return gg.RGBA{R: r, G: g, B: b, A: a}
}

func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok {
		return m
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
