package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/storage"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Events a slow browser may fall behind before old ones are dropped.
	eventBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errUnknownMessage = errors.New("web: unknown message type")

// Client is one browser connection playing its own run.
type Client struct {
	server  *Server
	conn    *websocket.Conn
	send    chan []byte
	id      string
	gameID  string
	player  string
	session *engine.Session
	sub     *engine.Subscription
	logger  *log.Logger
	gen     uint64 // generation whose sweep the browser has, owned by writePump
}

// readPump applies commands from the browser until the connection drops.
// It is the only writer to c.send and closes it on exit.
func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		c.session.Close()
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		if err := c.handle(data); err != nil {
			c.queue(errorMessage(c.id, err))
		}
	}
}

// handle decodes and applies one command. Results reach the browser through
// the session subscription; only failures are answered directly.
func (c *Client) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("web: malformed message: %w", err)
	}

	switch msg.Type {
	case MsgTap:
		if msg.Index == nil {
			return errors.New("web: tap needs an index")
		}
		_, err := c.session.Tap(*msg.Index)
		return err
	case MsgLaser:
		_, err := c.session.TouchLaser()
		return err
	case MsgRestart:
		return c.session.StartAt(c.server.firstLevel(c.gameID))
	case MsgNext:
		return c.session.Next()
	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}
}

// queue encodes msg for the write pump. Messages are dropped if the browser
// is too far behind.
func (c *Client) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("cannot encode message", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message", "event", msg.Event)
	}
}

// writePump forwards direct replies and session events to the browser and
// keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	e := c.session.Engine()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case evt := <-c.sub.Events():
			if evt.Outcome.Terminal() {
				c.saveRun(evt.State)
			}
			msg := eventMessage(c.id, e, evt)
			if evt.Generation != c.gen {
				// New level or run: its sweep may run at another speed.
				c.gen = evt.Generation
				msg.Sweep = newSweepView(c.server.settings.Sweep(evt.State.Level, evt.State.Score))
			}
			if err := c.write(msg); err != nil {
				return
			}

		case <-c.sub.Done():
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(msg Message) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// saveRun stores a finished run. Failures are logged and play goes on.
func (c *Client) saveRun(st engine.State) {
	store := c.server.store
	if store == nil || st.Score < c.server.minScore {
		return
	}
	_, err := store.SaveRun(storage.Run{
		GameID: c.gameID,
		Player: c.player,
		Score:  st.Score,
		Level:  st.Level,
		Reason: string(st.Reason),
	})
	if err != nil {
		c.logger.Error("could not save run", "error", err)
		return
	}
	c.logger.Debug("run saved", "score", st.Score, "level", st.Level)
}
