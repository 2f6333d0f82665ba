package host

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/drag-match/event"
	"github.com/lixenwraith/drag-match/game"
	"github.com/lixenwraith/drag-match/render"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// client is one websocket and the game it owns
type client struct {
	srv    *Server
	conn   *websocket.Conn
	remote string

	game   *game.Game
	runner *game.Runner

	send chan any
	done chan struct{}

	frames   *atomic.Int64
	dropped  *atomic.Int64
	commands *atomic.Int64

	drainMu   sync.Mutex // Event queue has a single consumer
	closeOnce sync.Once
}

func newClient(s *Server, conn *websocket.Conn, remote string) (*client, error) {
	opts := []game.Option{}
	if s.cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(s.cfg.Seed))
	}
	g, err := game.New(s.catalog, opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		srv:    s,
		conn:   conn,
		remote: remote,
		game:   g,
		send:   make(chan any, sendBuffer),
		done:   make(chan struct{}),

		frames:   s.stats.Counter(metricFrames),
		dropped:  s.stats.Counter(metricDropped),
		commands: s.stats.Counter(metricCommands),
	}
	c.runner = game.NewRunner(g, nil, s.cfg.FrameInterval(), c.onFrame)
	return c, nil
}

// push queues msg without blocking; a full buffer drops it
func (c *client) push(msg any) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

func (c *client) onFrame(f *render.Frame) {
	c.flushEvents()
	if c.push(FrameMessage{Type: MsgFrame, Frame: f}) {
		c.frames.Add(1)
	}
}

func (c *client) flushEvents() {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()
	c.game.Events().Drain(func(ev event.GameEvent) {
		c.push(EventMessage{Type: MsgEvent, Event: ev.Type.String(), Payload: ev.Payload})
	})
}

// handle applies one command; phase commands resync the frame loop
func (c *client) handle(msg ClientMessage) *ResultMessage {
	res := &ResultMessage{Type: MsgResult, Command: msg.Type}
	c.commands.Add(1)

	switch msg.Type {
	case MsgStart:
		idx := c.srv.cfg.Level
		if msg.Level != nil {
			idx = *msg.Level
		}
		before := c.game.Phase()
		if err := c.game.StartAt(idx); err != nil {
			res.Error = err.Error()
			break
		}
		res.OK = before == game.StateMenu
		c.runner.Sync()
	case MsgPause:
		res.OK = c.game.Pause()
		c.runner.Sync()
	case MsgResume:
		res.OK = c.game.Resume()
		c.runner.Sync()
	case MsgExit:
		res.OK = c.game.Exit()
		c.runner.Sync()
	case MsgDown:
		res.OK = c.game.PointerDown(msg.X, msg.Y)
	case MsgMove:
		c.game.PointerMove(msg.X, msg.Y)
		return nil
	case MsgUp:
		outcome, ok := c.game.PointerUp()
		res.OK = ok
		if ok {
			res.Outcome = outcome.String()
		}
	default:
		c.srv.stats.Counter(metricUnknown).Add(1)
		res.Error = "unknown message type"
	}

	c.flushEvents()
	return res
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.runner.Sync()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if res := c.handle(msg); res != nil {
			c.push(res)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// close stops the loop before signalling done so no frame races the shutdown
func (c *client) close() {
	c.closeOnce.Do(func() {
		c.runner.Stop()
		c.game.Exit()
		close(c.done)
		_ = c.conn.Close()
	})
}
