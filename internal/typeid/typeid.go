package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixLine     = "line"
	PrefixRect     = "rect"
	PrefixFreehand = "stroke"
	PrefixCanvas   = "canvas"
	PrefixAsset    = "asset"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewLineID() string     { return New(PrefixLine) }
func NewRectID() string     { return New(PrefixRect) }
func NewFreehandID() string { return New(PrefixFreehand) }
func NewCanvasID() string   { return New(PrefixCanvas) }
func NewAssetID() string    { return New(PrefixAsset) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
