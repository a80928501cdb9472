package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/render"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AssetDir       string `envconfig:"ASSET_DIR" default:"./data/assets"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	MDNSEnabled    bool   `envconfig:"MDNS_ENABLED" default:"false"`

	// Canvas
	CanvasWidth    float64 `envconfig:"CANVAS_WIDTH" default:"1280"`
	CanvasHeight   float64 `envconfig:"CANVAS_HEIGHT" default:"720"`
	StrokeStrength float64 `envconfig:"STROKE_STRENGTH" default:"2"`
	ArcThreshold   float64 `envconfig:"ARC_THRESHOLD" default:"50"`

	// Hit testing
	SegmentTolerance float64 `envconfig:"SEGMENT_TOLERANCE" default:"5"`
	HandleRadius     float64 `envconfig:"HANDLE_RADIUS" default:"20"`
	FreehandRadius   float64 `envconfig:"FREEHAND_RADIUS" default:"25"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Tolerances returns the hit-test thresholds.
func (c *Config) Tolerances() hittest.Tolerances {
	return hittest.Tolerances{
		Segment:  c.SegmentTolerance,
		Handle:   c.HandleRadius,
		Freehand: c.FreehandRadius,
	}
}

// Style returns the render style for the configured canvas.
func (c *Config) Style() render.Style {
	st := render.DefaultStyle()
	st.Width = c.CanvasWidth
	st.Height = c.CanvasHeight
	st.ArcThreshold = c.ArcThreshold
	return st
}

// EngineOptions returns the engine settings shared by every canvas.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTolerances(c.Tolerances()),
		engine.WithStrength(c.StrokeStrength),
	}
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
