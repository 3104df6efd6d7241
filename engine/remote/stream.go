package remote

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// writeWait bounds a single websocket write.
const writeWait = 10 * time.Second

// client is one stream subscriber. Poses are queued on send by the tick goroutine and written by
// writePump; a full queue drops the pose.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	server *Server
	logger logrus.FieldLogger
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		s.logger.WithError(err).Warn("stream upgrade failed")
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, s.sendBuffer),
		done:   make(chan struct{}),
		server: s,
	}
	c.id = s.engine.Subscribe(c.enqueue)
	c.logger = s.logger.WithField("client", c.id)

	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	c.logger.Debug("stream client connected")

	go c.writePump(s.pingInterval)
	go c.readPump()
}

// enqueue runs on the tick goroutine and must not block.
func (c *client) enqueue(p engine.Pose) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.WithError(err).Warn("encode pose")
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// stop unsubscribes the client and closes its connection. Safe to call more than once.
func (c *client) stop() {
	c.once.Do(func() {
		// Once Unsubscribe returns no tick can enqueue again.
		c.server.engine.Unsubscribe(c.id)

		c.server.mu.Lock()
		delete(c.server.clients, c.id)
		c.server.mu.Unlock()

		close(c.done)
		c.logger.Debug("stream client disconnected")
	})
}

func (c *client) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.WithError(err).Debug("stream write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.WithError(err).Debug("stream ping failed")
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// readPump discards client messages; it exists to notice the peer going away.
func (c *client) readPump() {
	defer c.stop()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
