package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/coder/websocket"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/hittest"
	"github.com/drawshapes/drawshapes/internal/render"
	"github.com/drawshapes/drawshapes/internal/shape"
)

var (
	ErrGestureBusy     = errors.New("another client is dragging")
	ErrNotGestureOwner = errors.New("gesture belongs to another client")
	ErrUnknownMessage  = errors.New("unknown message type")
)

// Canvas is one live drawing surface shared by every client connected to
// it. All engine calls are serialized by mu, and at most one client at a
// time may run a pan gesture.
type Canvas struct {
	ID string

	mu       sync.Mutex
	eng      *engine.Engine
	style    render.Style
	clients  map[string]*Client // clientID -> client
	panOwner string
	seq      int64
	cursors  map[string]*PresencePayload // clientID -> last presence update
}

func newCanvas(id string, style render.Style, opts ...engine.Option) *Canvas {
	c := &Canvas{
		ID:       id,
		style:    style,
		clients:  make(map[string]*Client),
		cursors:  make(map[string]*PresencePayload),
	}
	c.eng = engine.NewEngine(append(opts, engine.WithRenderer(c), engine.WithLogger(slog.With("canvas", id)))...)
	return c
}

// Render broadcasts the compiled scene to every client. The engine calls
// it with c.mu held.
func (c *Canvas) Render(sc engine.Scene) {
	msg, err := c.sceneMessage(sc)
	if err != nil {
		slog.Error("marshal scene", "canvas", c.ID, "error", err)
		return
	}
	for _, cl := range c.clients {
		cl.Send(msg)
	}
}

func (c *Canvas) sceneMessage(sc engine.Scene) (*Message, error) {
	payload := ScenePayload{
		Commands:    render.Compile(sc, c.style),
		State:       sc.State.String(),
		ShapeType:   c.eng.ShapeType().String(),
		RectMode:    c.eng.RectMode().String(),
		ShowDelete:  sc.ShowDelete,
		ShowOptions: sc.ShowOptions,
	}
	if sel := c.eng.Selection(); sel.Found() {
		payload.Selection = sel.ID
	}
	msg, err := newMessage(TypeScene, payload)
	if err != nil {
		return nil, err
	}
	c.seq++
	msg.Seq = c.seq
	msg.CanvasID = c.ID
	return msg, nil
}

// Commands compiles the current scene.
func (c *Canvas) Commands() []render.DrawCommand {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.Compile(c.eng.Scene(), c.style)
}

// Scene returns a snapshot of the canvas.
func (c *Canvas) Scene() engine.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Scene()
}

// SetBackground sets the background asset and broadcasts the new scene.
func (c *Canvas) SetBackground(assetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eng.SetBackground(assetID)
}

// LoadSample replaces the canvas content with the demo shapes.
func (c *Canvas) LoadSample() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panOwner = ""
	c.eng.LoadSample()
}

// Presences returns the last presence reported by each connected client.
func (c *Canvas) Presences() map[string]*PresencePayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.cursors)
}

// ClientCount returns the number of connected clients.
func (c *Canvas) ClientCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

func (c *Canvas) join(cl *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients[cl.ClientID] = cl

	if welcome, err := newMessage(TypeWelcome, WelcomePayload{CanvasID: c.ID, ClientID: cl.ClientID}); err == nil {
		cl.Send(welcome)
	}
	if state, err := newMessage(TypePresenceState, PresenceStatePayload{Presences: maps.Clone(c.cursors)}); err == nil {
		cl.Send(state)
	} else {
		slog.Error("marshal presence state", "canvas", c.ID, "error", err)
	}
	if msg, err := c.sceneMessage(c.eng.Scene()); err == nil {
		cl.Send(msg)
	}
}

// leave removes cl and its cursor, and cancels any gesture it left
// running. It reports whether cl was still registered.
func (c *Canvas) leave(cl *Client) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.clients[cl.ClientID]; !ok {
		return false
	}
	delete(c.clients, cl.ClientID)
	delete(c.cursors, cl.ClientID)
	if c.panOwner == cl.ClientID {
		c.panOwner = ""
		c.eng.DragCancel()
	}
	if msg, err := newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: cl.ClientID}); err == nil {
		c.broadcast(msg, "")
	}
	return true
}

// broadcast sends msg to every client but excludeClientID. Callers hold
// mu, so sends never race with a client's send channel being closed.
func (c *Canvas) broadcast(msg *Message, excludeClientID string) {
	for _, cl := range c.clients {
		if cl.ClientID != excludeClientID {
			cl.Send(msg)
		}
	}
}

// handleMessage applies one client message. Errors are reported back to
// the sender only.
func (c *Canvas) handleMessage(sender *Client, msg *Message) error {
	switch msg.Type {
	case TypeTap:
		var p TapPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("tap payload: %w", err)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.eng.Tap(geom.Pt(p.X, p.Y))

	case TypePan:
		var p PanPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("pan payload: %w", err)
		}
		phase, err := engine.ParsePhase(p.Phase)
		if err != nil {
			return err
		}
		if err := c.pan(sender.ClientID, engine.PanEvent{
			Phase:       phase,
			Start:       geom.Pt(p.StartX, p.StartY),
			Translation: geom.V(p.TX, p.TY),
		}); err != nil {
			return err
		}

	case TypeShapeMode:
		var p ShapeModePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("shape payload: %w", err)
		}
		kind, err := shape.ParseKind(p.Shape)
		if err != nil {
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.panOwner = ""
		c.eng.SetShapeType(kind)

	case TypeRectMode:
		var p RectModePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("rect mode payload: %w", err)
		}
		mode, err := hittest.ParseRectMode(p.Mode)
		if err != nil {
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.panOwner = ""
		c.eng.SetRectMode(mode)

	case TypeDelete:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.eng.DeleteSelected()

	case TypePresenceUpdate:
		var p PresencePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("presence payload: %w", err)
		}
		p.ClientID = sender.ClientID
		out, err := newMessage(TypePresenceUpdate, p)
		if err != nil {
			return err
		}
		out.ClientID = sender.ClientID
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.clients[sender.ClientID]; !ok {
			return nil
		}
		c.cursors[sender.ClientID] = &p
		c.broadcast(out, sender.ClientID)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// pan routes a pan sample to the engine if clientID may drive the gesture.
func (c *Canvas) pan(clientID string, ev engine.PanEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Phase {
	case engine.PhaseBegan:
		if c.panOwner != "" && c.panOwner != clientID {
			return ErrGestureBusy
		}
		c.panOwner = clientID
	default:
		if c.panOwner != clientID {
			return ErrNotGestureOwner
		}
		if ev.Phase == engine.PhaseEnded || ev.Phase == engine.PhaseCancelled {
			c.panOwner = ""
		}
	}
	c.eng.Pan(ev)
	return nil
}

func (c *Canvas) closeClients(code websocket.StatusCode, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cl := range c.clients {
		if cl.conn != nil {
			go cl.conn.Close(code, reason)
		}
	}
}
