package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/render"
	"github.com/drawshapes/drawshapes/internal/typeid"
)

// Hub owns the live canvases and the registration of their clients.
type Hub struct {
	mu         sync.RWMutex
	canvases   map[string]*Canvas // canvasID -> canvas
	style      render.Style
	engineOpts []engine.Option

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a hub whose canvases compile scenes with style and build
// their engines with opts.
func NewHub(style render.Style, opts ...engine.Option) *Hub {
	return &Hub{
		canvases:   make(map[string]*Canvas),
		style:      style,
		engineOpts: opts,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes client registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop ends Run and closes every client connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, c := range h.canvases {
			c.closeClients(websocket.StatusGoingAway, "server shutting down")
		}
	})
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Create starts a new, empty canvas.
func (h *Hub) Create() *Canvas {
	c := newCanvas(typeid.NewCanvasID(), h.style, h.engineOpts...)

	h.mu.Lock()
	h.canvases[c.ID] = c
	h.mu.Unlock()

	slog.Info("canvas created", "canvas", c.ID)
	return c
}

func (h *Hub) Get(canvasID string) (*Canvas, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.canvases[canvasID]
	return c, ok
}

// Remove drops a canvas and disconnects its clients.
func (h *Hub) Remove(canvasID string) bool {
	h.mu.Lock()
	c, ok := h.canvases[canvasID]
	delete(h.canvases, canvasID)
	h.mu.Unlock()
	if !ok {
		return false
	}

	c.closeClients(websocket.StatusNormalClosure, "canvas deleted")
	slog.Info("canvas removed", "canvas", canvasID)
	return true
}

func (h *Hub) addClient(client *Client) {
	client.canvas.join(client)
	slog.Info("client joined", "client", client.ClientID, "canvas", client.canvas.ID)
}

func (h *Hub) removeClient(client *Client) {
	if !client.canvas.leave(client) {
		return
	}
	close(client.send)
	slog.Info("client left", "client", client.ClientID, "canvas", client.canvas.ID)
}

// SetBackground sets the background asset of a live canvas. It reports
// whether the canvas exists.
func (h *Hub) SetBackground(canvasID, assetID string) bool {
	c, ok := h.Get(canvasID)
	if !ok {
		return false
	}
	c.SetBackground(assetID)
	return true
}

// Commands compiles the display list of a live canvas.
func (h *Hub) Commands(canvasID string) ([]render.DrawCommand, bool) {
	c, ok := h.Get(canvasID)
	if !ok {
		return nil, false
	}
	return c.Commands(), true
}
