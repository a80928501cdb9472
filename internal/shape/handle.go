package shape

// Handle names a single draggable point of a shape.
type Handle int

const (
	HandleNone Handle = iota
	HandleStart
	HandleEnd
	HandleA
	HandleB
	HandleC
	HandleD
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	case HandleA:
		return "a"
	case HandleB:
		return "b"
	case HandleC:
		return "c"
	case HandleD:
		return "d"
	default:
		return "none"
	}
}

// LineHandles and RectHandles list handles in hit-test order.
var (
	LineHandles = []Handle{HandleStart, HandleEnd}
	RectHandles = []Handle{HandleA, HandleB, HandleC, HandleD}
)

// Edge names one side of a rectangle.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeAB
	EdgeBD
	EdgeDC
	EdgeCA
)

// RectEdges lists edges in hit-test order.
var RectEdges = []Edge{EdgeAB, EdgeBD, EdgeDC, EdgeCA}

func (e Edge) String() string {
	switch e {
	case EdgeAB:
		return "ab"
	case EdgeBD:
		return "bd"
	case EdgeDC:
		return "dc"
	case EdgeCA:
		return "ca"
	default:
		return "none"
	}
}

// Corners returns the pair of corners that move together when e is dragged.
func (e Edge) Corners() (Handle, Handle) {
	switch e {
	case EdgeAB:
		return HandleA, HandleB
	case EdgeBD:
		return HandleB, HandleD
	case EdgeDC:
		return HandleD, HandleC
	case EdgeCA:
		return HandleC, HandleA
	}
	return HandleNone, HandleNone
}
