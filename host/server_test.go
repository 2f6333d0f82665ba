package host

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drag-match/config"
	"github.com/lixenwraith/drag-match/content"
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/render"
)

// envelope decodes any server message
type envelope struct {
	Type    string          `json:"type"`
	Frame   *render.Frame   `json:"frame"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Command string          `json:"command"`
	OK      bool            `json:"ok"`
	Outcome string          `json:"outcome"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cat, err := content.NewCatalog(level.PuzzleLevel{
		Name:        "cat",
		Keys:        []string{"C", "A", "T"},
		Layout:      level.DefaultLayout(),
		Palette:     level.DefaultPalette(),
		Distractors: level.DistractorPolicy{Count: 2, Pool: []string{"B", "R"}},
	})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Seed = 5
	srv, err := New(&cfg, cat)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestStaticRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))

	resp, body = get(t, ts.URL+"/version")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), Version)

	resp, body = get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "app.js")
	assert.Equal(t, "default-src 'self'", resp.Header.Get("Content-Security-Policy"))

	resp, _ = get(t, ts.URL+"/app.js")
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")

	resp, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQRCode(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/qr")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

// wsReader remembers every event it skips past
type wsReader struct {
	t      *testing.T
	conn   *websocket.Conn
	events []envelope
}

func dial(t *testing.T, ts *httptest.Server) *wsReader {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &wsReader{t: t, conn: conn}
}

func (r *wsReader) send(msg ClientMessage) {
	r.t.Helper()
	require.NoError(r.t, r.conn.WriteJSON(msg))
}

// readUntil skips messages until match accepts one
func (r *wsReader) readUntil(match func(envelope) bool) envelope {
	r.t.Helper()
	require.NoError(r.t, r.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg envelope
		require.NoError(r.t, r.conn.ReadJSON(&msg))
		if msg.Type == MsgEvent {
			r.events = append(r.events, msg)
		}
		if match(msg) {
			return msg
		}
	}
}

// seen returns payloads of recorded events named name
func (r *wsReader) seen(name string) []string {
	var out []string
	for _, ev := range r.events {
		if ev.Event == name {
			out = append(out, string(ev.Payload))
		}
	}
	return out
}

func result(cmd string) func(envelope) bool {
	return func(m envelope) bool { return m.Type == MsgResult && m.Command == cmd }
}

func framePhase(phase string) func(envelope) bool {
	return func(m envelope) bool { return m.Type == MsgFrame && m.Frame != nil && m.Frame.Phase == phase }
}

func eventNamed(name string) func(envelope) bool {
	return func(m envelope) bool { return m.Type == MsgEvent && m.Event == name }
}

func TestWebsocketPhaseCommands(t *testing.T) {
	srv, ts := newTestServer(t)
	ws := dial(t, ts)

	ws.readUntil(framePhase("menu"))
	assert.Eventually(t, func() bool { return srv.Active() == 1 }, time.Second, 5*time.Millisecond)

	ws.send(ClientMessage{Type: MsgPause})
	assert.False(t, ws.readUntil(result(MsgPause)).OK, "pause in menu is a no-op")

	ws.send(ClientMessage{Type: MsgStart})
	assert.True(t, ws.readUntil(result(MsgStart)).OK)
	f := ws.readUntil(framePhase("playing")).Frame
	assert.Equal(t, "cat", f.LevelName)
	assert.Len(t, f.Slots, 3)
	assert.Len(t, f.Pieces, 5)

	ws.send(ClientMessage{Type: MsgPause})
	assert.True(t, ws.readUntil(result(MsgPause)).OK)
	ws.readUntil(framePhase("paused"))

	ws.send(ClientMessage{Type: MsgResume})
	assert.True(t, ws.readUntil(result(MsgResume)).OK)

	ws.send(ClientMessage{Type: MsgExit})
	assert.True(t, ws.readUntil(result(MsgExit)).OK)
	ws.readUntil(framePhase("menu"))

	ws.send(ClientMessage{Type: "dance"})
	assert.Equal(t, "unknown message type", ws.readUntil(result("dance")).Error)

	assert.NotEmpty(t, ws.seen("level_started"))
	assert.NotEmpty(t, ws.seen("phase_changed"))

	ws.conn.Close()
	assert.Eventually(t, func() bool { return srv.Active() == 0 }, time.Second, 5*time.Millisecond)

	resp, body := get(t, ts.URL+"/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]float64
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 1.0, stats[metricServed])
	assert.Equal(t, 0.0, stats[metricActive])
	assert.Equal(t, 1.0, stats[metricUnknown])
	assert.Greater(t, stats[metricFrames], 0.0)
	assert.GreaterOrEqual(t, stats[metricCommands], 6.0)
}

func center(x, y, w, h float64) core.Vec2 {
	return core.Rect{X: x, Y: y, W: w, H: h}.Center()
}

func TestWebsocketStartRejectsHugeLevel(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dial(t, ts)
	ws.readUntil(framePhase("menu"))

	huge := math.MaxInt / 2
	ws.send(ClientMessage{Type: MsgStart, Level: &huge})
	res := ws.readUntil(result(MsgStart))
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "out of range")

	ws.send(ClientMessage{Type: MsgStart})
	assert.True(t, ws.readUntil(result(MsgStart)).OK)
	ws.readUntil(framePhase("playing"))
}

func TestWebsocketPlacement(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dial(t, ts)

	ws.send(ClientMessage{Type: MsgStart})
	f := ws.readUntil(framePhase("playing")).Frame

	place := func(pieceKey, slotKey string) string {
		var from, to core.Vec2
		for _, p := range f.Pieces {
			if p.Key == pieceKey && !p.Placed {
				from = center(p.X, p.Y, p.W, p.H)
			}
		}
		for _, s := range f.Slots {
			if s.Key == slotKey {
				to = center(s.X, s.Y, s.W, s.H)
			}
		}
		ws.send(ClientMessage{Type: MsgDown, X: from.X, Y: from.Y})
		require.True(t, ws.readUntil(result(MsgDown)).OK)
		ws.send(ClientMessage{Type: MsgMove, X: to.X, Y: to.Y})
		ws.send(ClientMessage{Type: MsgUp})
		return ws.readUntil(result(MsgUp)).Outcome
	}

	assert.Equal(t, "rejected", place("B", "C"))
	assert.Equal(t, "placed", place("C", "C"))
	assert.Equal(t, "placed", place("A", "A"))
	assert.Equal(t, "placed", place("T", "T"))

	ev := ws.readUntil(eventNamed("puzzle_completed"))
	assert.JSONEq(t, `{"level":0,"award":100,"score":100}`, string(ev.Payload))
	done := ws.readUntil(framePhase("completed")).Frame
	assert.Equal(t, 100, done.Score)

	assert.Len(t, ws.seen("piece_rejected"), 1)
	assert.Len(t, ws.seen("piece_placed"), 3)
	assert.Contains(t, ws.seen("cue"), `{"name":"error"}`)
	assert.Contains(t, ws.seen("cue"), `{"name":"success"}`)
}
