package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/drawshapes/drawshapes/internal/auth"
	"github.com/drawshapes/drawshapes/internal/shape"
)

type Handler struct {
	hub            *Hub
	auth           *auth.Service
	originPatterns []string
}

// NewHandler serves canvas routes. allowedOrigins are full origins such as
// "http://localhost:5173".
func NewHandler(hub *Hub, authSvc *auth.Service, allowedOrigins []string) *Handler {
	patterns := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return &Handler{hub: hub, auth: authSvc, originPatterns: patterns}
}

type canvasResponse struct {
	CanvasID  string                      `json:"canvasId"`
	Clients   int                         `json:"clients"`
	State     string                      `json:"state"`
	Shapes    shape.Collection            `json:"shapes"`
	Presences map[string]*PresencePayload `json:"presences"`
}

// Create starts a canvas and returns a token for it. ?sample=1 seeds the
// demo shapes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c := h.hub.Create()
	if r.URL.Query().Get("sample") == "1" {
		c.LoadSample()
	}

	result, err := h.auth.IssueToken(c.ID)
	if err != nil {
		slog.Error("issue canvas token", "canvas", c.ID, "error", err)
		h.hub.Remove(c.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.canvas(w, r)
	if !ok {
		return
	}
	sc := c.Scene()
	writeJSON(w, http.StatusOK, canvasResponse{
		CanvasID:  c.ID,
		Clients:   c.ClientCount(),
		State:     sc.State.String(),
		Shapes:    sc.Shapes,
		Presences: c.Presences(),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.hub.Remove(mux.Vars(r)["canvasId"]) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "canvas not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeWS upgrades to a WebSocket and joins the canvas. It must run behind
// auth.CanvasMiddleware.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	c, ok := h.canvas(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, c, conn, uuid.New().String())
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// Lookup returns the live canvas with the given id.
func (h *Handler) Lookup(canvasID string) (*Canvas, bool) {
	return h.hub.Get(canvasID)
}

func (h *Handler) canvas(w http.ResponseWriter, r *http.Request) (*Canvas, bool) {
	c, ok := h.hub.Get(mux.Vars(r)["canvasId"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "canvas not found"})
	}
	return c, ok
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
