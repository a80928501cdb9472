package engine

import (
	"fmt"

	"github.com/drawshapes/drawshapes/internal/geom"
)

// Phase is the lifecycle stage of a pan gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase maps the wire names "began", "changed", "ended" and
// "cancelled" to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "began":
		return PhaseBegan, nil
	case "changed":
		return PhaseChanged, nil
	case "ended":
		return PhaseEnded, nil
	case "cancelled", "canceled":
		return PhaseCancelled, nil
	}
	return 0, fmt.Errorf("unknown gesture phase %q", s)
}

// PanEvent is one sample of a pan gesture as platform recognizers report
// it: the point where the gesture started and the translation accumulated
// since then.
type PanEvent struct {
	Phase       Phase
	Start       geom.Point
	Translation geom.Vec
}

// Point is the current pointer location.
func (ev PanEvent) Point() geom.Point {
	return ev.Start.Translate(ev.Translation)
}

// Pan feeds one pan sample into the drag state machine.
func (e *Engine) Pan(ev PanEvent) {
	switch ev.Phase {
	case PhaseBegan:
		e.DragBegin(ev.Point())
	case PhaseChanged:
		e.DragChange(ev.Point())
	case PhaseEnded:
		e.DragEnd(ev.Point())
	case PhaseCancelled:
		e.DragCancel()
	}
}
