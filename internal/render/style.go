package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style holds the colors and sizes used to compile a scene.
type Style struct {
	Width  float64 // canvas size in canvas units
	Height float64
	Canvas string // fill behind the background image

	Stroke   string // shape stroke
	Underlay string // wide stroke painted under selected shapes

	HandleFill    string
	HandleStroke  string
	HandleOpacity float64
	HandleRadius  float64

	// Join arcs are drawn at rectangle corners whose adjacent edges are
	// both at least 2*ArcThreshold long.
	ArcRadius    float64
	ArcThreshold float64
}

// DefaultStyle matches the look of the touch client.
func DefaultStyle() Style {
	return Style{
		Width:         1280,
		Height:        720,
		Canvas:        "#1a1a2e",
		Stroke:        "#ffff00",
		Underlay:      "#ffffff",
		HandleFill:    "#ffffff",
		HandleStroke:  "#555555",
		HandleOpacity: 0.5,
		HandleRadius:  20,
		ArcRadius:     50,
		ArcThreshold:  50,
	}
}

// ParseColor parses "#rgb" and "#rrggbb" hex colors.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// withOpacity parses s and scales its alpha. An opacity of 0 is treated as
// fully opaque, matching the omitted JSON field.
func withOpacity(s string, opacity float64) (color.NRGBA, error) {
	c, err := ParseColor(s)
	if err != nil {
		return c, err
	}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(opacity*255 + 0.5)
	}
	return c, nil
}
