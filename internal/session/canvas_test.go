package session

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/geom"
	"github.com/drawshapes/drawshapes/internal/render"
)

func drain(t *testing.T, cl *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case m := <-cl.send:
			out = append(out, *m)
		default:
			return out
		}
	}
}

func lastScene(t *testing.T, msgs []Message) ScenePayload {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == TypeScene {
			var p ScenePayload
			require.NoError(t, json.Unmarshal(msgs[i].Payload, &p))
			return p
		}
	}
	t.Fatal("no scene message")
	return ScenePayload{}
}

func mustMessage(t *testing.T, typ string, payload any) *Message {
	t.Helper()
	m, err := newMessage(typ, payload)
	require.NoError(t, err)
	return m
}

func joined(t *testing.T, hub *Hub, c *Canvas, id string) *Client {
	t.Helper()
	cl := NewClient(hub, c, nil, id)
	c.join(cl)
	return cl
}

func TestJoinSendsWelcomeAndScene(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()
	cl := joined(t, hub, c, "a")

	msgs := drain(t, cl)
	require.Len(t, msgs, 3)
	require.Equal(t, TypeWelcome, msgs[0].Type)
	require.Equal(t, TypePresenceState, msgs[1].Type)
	require.Equal(t, TypeScene, msgs[2].Type)
	require.Equal(t, c.ID, msgs[2].CanvasID)

	sc := lastScene(t, msgs)
	require.Equal(t, "idle", sc.State)
	require.Equal(t, "line", sc.ShapeType)
	require.Len(t, sc.Commands, 1)
	require.Equal(t, 1, c.ClientCount())
}

func TestPanDrawsAndBroadcasts(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()
	a := joined(t, hub, c, "a")
	b := joined(t, hub, c, "b")
	drain(t, a)
	drain(t, b)

	pan := func(phase string, tx, ty float64) error {
		return c.handleMessage(a, mustMessage(t, TypePan, PanPayload{Phase: phase, StartX: 10, StartY: 10, TX: tx, TY: ty}))
	}
	require.NoError(t, pan("began", 0, 0))
	require.NoError(t, pan("changed", 40, 0))
	require.NoError(t, pan("ended", 80, 0))

	sc := c.Scene()
	require.Len(t, sc.Shapes.Lines, 1)
	require.Equal(t, geom.Pt(10, 10), sc.Shapes.Lines[0].Start)
	require.Equal(t, geom.Pt(90, 10), sc.Shapes.Lines[0].End)

	// Both clients see every step.
	require.Len(t, drain(t, a), 3)
	got := drain(t, b)
	require.Len(t, got, 3)
	p := lastScene(t, got)
	require.Equal(t, "selecting", p.State)
	require.Equal(t, sc.Shapes.Lines[0].ID, p.Selection)
	require.True(t, p.ShowOptions)
}

func TestPanOwnership(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()
	a := joined(t, hub, c, "a")
	b := joined(t, hub, c, "b")

	began := mustMessage(t, TypePan, PanPayload{Phase: "began"})
	require.NoError(t, c.handleMessage(a, began))
	require.ErrorIs(t, c.handleMessage(b, began), ErrGestureBusy)
	require.ErrorIs(t, c.handleMessage(b, mustMessage(t, TypePan, PanPayload{Phase: "changed", TX: 5})), ErrNotGestureOwner)

	// The owner leaving cancels its gesture and frees the canvas.
	require.True(t, c.leave(a))
	require.False(t, c.leave(a))
	require.Equal(t, engine.StateIdle, c.Scene().State)
	require.Nil(t, c.Scene().Drawing)
	require.NoError(t, c.handleMessage(b, began))
}

func TestModeAndDeleteMessages(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()
	a := joined(t, hub, c, "a")

	require.NoError(t, c.handleMessage(a, mustMessage(t, TypeRectMode, RectModePayload{Mode: "arm"})))
	p := lastScene(t, drain(t, a))
	require.Equal(t, "rect", p.ShapeType)
	require.Equal(t, "arm", p.RectMode)

	require.NoError(t, c.handleMessage(a, mustMessage(t, TypeShapeMode, ShapeModePayload{Shape: "line"})))
	for _, m := range []*Message{
		mustMessage(t, TypePan, PanPayload{Phase: "began"}),
		mustMessage(t, TypePan, PanPayload{Phase: "ended", TX: 100}),
		mustMessage(t, TypeTap, TapPayload{X: 50, Y: 2}),
	} {
		require.NoError(t, c.handleMessage(a, m))
	}
	require.True(t, lastScene(t, drain(t, a)).ShowDelete)

	require.NoError(t, c.handleMessage(a, &Message{Type: TypeDelete}))
	require.Empty(t, c.Scene().Shapes.Lines)

	require.Error(t, c.handleMessage(a, mustMessage(t, TypeShapeMode, ShapeModePayload{Shape: "circle"})))
	require.Error(t, c.handleMessage(a, mustMessage(t, TypeRectMode, RectModePayload{Mode: "spin"})))
	require.Error(t, c.handleMessage(a, mustMessage(t, TypePan, PanPayload{Phase: "hover"})))
	require.ErrorIs(t, c.handleMessage(a, &Message{Type: "doc.sync"}), ErrUnknownMessage)
}

func TestPresenceRelayedToOthers(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()
	a := joined(t, hub, c, "a")
	b := joined(t, hub, c, "b")
	drain(t, a)
	drain(t, b)

	require.NoError(t, c.handleMessage(a, mustMessage(t, TypePresenceUpdate, PresencePayload{Cursor: &CursorPos{X: 1, Y: 2}})))
	require.Empty(t, drain(t, a))
	got := drain(t, b)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ClientID)

	require.Contains(t, c.Presences(), "a")
	require.Equal(t, "a", c.Presences()["a"].ClientID)

	// Late joiners get the cursors already on the canvas.
	late := joined(t, hub, c, "c")
	msgs := drain(t, late)
	require.Equal(t, TypePresenceState, msgs[1].Type)
	var state PresenceStatePayload
	require.NoError(t, json.Unmarshal(msgs[1].Payload, &state))
	require.Equal(t, &CursorPos{X: 1, Y: 2}, state.Presences["a"].Cursor)

	c.leave(a)
	require.NotContains(t, c.Presences(), "a")
	require.Equal(t, TypePresenceLeave, drain(t, b)[0].Type)

	// Updates from a client that already left are dropped.
	require.NoError(t, c.handleMessage(a, mustMessage(t, TypePresenceUpdate, PresencePayload{})))
	require.NotContains(t, c.Presences(), "a")
	require.Empty(t, drain(t, b))
}

func TestHubCanvases(t *testing.T) {
	hub := NewHub(render.DefaultStyle())
	c := hub.Create()

	got, ok := hub.Get(c.ID)
	require.True(t, ok)
	require.Same(t, c, got)

	c.LoadSample()
	require.Len(t, c.Scene().Shapes.Rects, 1)
	c.SetBackground("asset_1")
	require.Equal(t, "image", c.Commands()[1].Op)

	require.True(t, hub.Remove(c.ID))
	require.False(t, hub.Remove(c.ID))
	_, ok = hub.Get(c.ID)
	require.False(t, ok)
}

func TestCoalesceKeepsNewestScene(t *testing.T) {
	queue := make(chan *Message, 8)
	first := &Message{Type: TypeScene, Seq: 1}
	for _, m := range []*Message{
		{Type: TypePresenceUpdate},
		{Type: TypeScene, Seq: 2},
		{Type: TypeError},
		{Type: TypeScene, Seq: 3},
		{Type: TypePresenceLeave},
	} {
		queue <- m
	}

	var got []string
	for _, m := range coalesce(first, queue) {
		got = append(got, fmt.Sprintf("%s/%d", m.Type, m.Seq))
	}
	require.Equal(t, []string{"presence.update/0", "error/0", "scene/3", "presence.leave/0"}, got)
	require.Empty(t, queue)

	require.Len(t, coalesce(&Message{Type: TypeWelcome}, queue), 1)
}

func TestDecode(t *testing.T) {
	m, err := decode([]byte(`{"type":"gesture.tap","payload":{"x":1,"y":2}}`))
	require.NoError(t, err)
	require.Equal(t, TypeTap, m.Type)

	_, err = decode([]byte(`{"payload":{}}`))
	require.ErrorIs(t, err, errEmptyType)
	_, err = decode([]byte(`not json`))
	require.Error(t, err)
}
