package session

import (
	"encoding/json"

	"github.com/drawshapes/drawshapes/internal/render"
)

type Message struct {
	Type     string          `json:"type"`
	CanvasID string          `json:"canvasId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Gestures (client → server)
	TypeTap = "gesture.tap"
	TypePan = "gesture.pan"

	// Commands (client → server)
	TypeShapeMode = "mode.shape"
	TypeRectMode  = "mode.rect"
	TypeDelete    = "shape.delete"

	// Scene (server → client)
	TypeScene = "scene"

	// Presence
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceLeave  = "presence.leave"
)

type WelcomePayload struct {
	CanvasID string `json:"canvasId"`
	ClientID string `json:"clientId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type TapPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PanPayload carries one pan sample: the gesture's start point and the
// translation accumulated since then.
type PanPayload struct {
	Phase  string  `json:"phase"`
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	TX     float64 `json:"tx"`
	TY     float64 `json:"ty"`
}

type ShapeModePayload struct {
	Shape string `json:"shape"` // "line", "rect" or "freehand"
}

type RectModePayload struct {
	Mode string `json:"mode"` // "shape" or "arm"
}

type ScenePayload struct {
	Commands    []render.DrawCommand `json:"commands"`
	State       string               `json:"state"`
	ShapeType   string               `json:"shapeType"`
	RectMode    string               `json:"rectMode"`
	Selection   string               `json:"selection,omitempty"`
	ShowDelete  bool                 `json:"showDelete"`
	ShowOptions bool                 `json:"showOptions"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresencePayload struct {
	ClientID string     `json:"clientId,omitempty"`
	Cursor   *CursorPos `json:"cursor,omitempty"`
	Drawing  bool       `json:"drawing,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

// newMessage marshals payload into a message of type typ.
func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Payload: data}, nil
}
