package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

var errEmptyType = errors.New("message has no type")

// Client is one WebSocket connection joined to a canvas.
type Client struct {
	hub      *Hub
	canvas   *Canvas
	conn     *websocket.Conn
	send     chan *Message
	ClientID string
}

func NewClient(hub *Hub, canvas *Canvas, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		hub:      hub,
		canvas:   canvas,
		conn:     conn,
		send:     make(chan *Message, sendBuffer),
		ClientID: clientID,
	}
}

// ReadPump applies incoming messages to the canvas until the connection
// closes. Malformed or rejected messages are answered with an error message.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				slog.Debug("read error", "error", err, "client", c.ClientID)
			}
			return
		}

		msg, err := decode(data)
		if err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.sendError(err)
			continue
		}
		msg.ClientID = c.ClientID
		msg.CanvasID = c.canvas.ID

		if err := c.canvas.handleMessage(c, msg); err != nil {
			slog.Debug("message rejected", "type", msg.Type, "error", err, "client", c.ClientID)
			c.sendError(err)
		}
	}
}

func decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if msg.Type == "" {
		return nil, errEmptyType
	}
	return &msg, nil
}

// WritePump writes queued messages and keeps the connection alive with
// pings. It returns when the send channel is closed.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			for _, m := range coalesce(msg, c.send) {
				writeCtx, cancel := context.WithTimeout(ctx, writeWait)
				err := wsjson.Write(writeCtx, c.conn, m)
				cancel()
				if err != nil {
					slog.Debug("write error", "error", err, "client", c.ClientID)
					return
				}
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// coalesce drains whatever is already queued behind first. Scene messages
// are full snapshots, so only the newest one in the batch is kept, at its
// queue position; everything else is kept in order.
func coalesce(first *Message, queue <-chan *Message) []*Message {
	batch := []*Message{first}
drain:
	for {
		select {
		case m, ok := <-queue:
			if !ok {
				break drain
			}
			batch = append(batch, m)
		default:
			break drain
		}
	}

	last := -1
	for i, m := range batch {
		if m.Type == TypeScene {
			last = i
		}
	}
	out := batch[:0]
	for i, m := range batch {
		if m.Type == TypeScene && i != last {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Send queues msg without blocking. Messages are dropped when the client
// is too slow to drain its buffer.
func (c *Client) Send(msg *Message) {
	select {
	case c.send <- msg:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID, "type", msg.Type)
	}
}

func (c *Client) sendError(err error) {
	msg, merr := newMessage(TypeError, ErrorPayload{Message: err.Error()})
	if merr != nil {
		return
	}
	msg.CanvasID = c.canvas.ID
	c.Send(msg)
}
