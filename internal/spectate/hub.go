package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10 // must be shorter than pongWait
	sendBuffer = 16
)

// keepalive holds the connection timings a hub hands to its clients.
type keepalive struct {
	write, pong, ping time.Duration
}

// client is one connected spectator.
type client struct {
	ws   *websocket.Conn
	send chan []byte
	keepalive
}

// enqueue drops the frame when the client is behind.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

// writePump sends queued frames and pings the spectator every ping period
// so an idle connection outlives the read deadline.
func (c *client) writePump() {
	ticker := time.NewTicker(c.ping)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.write))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.write))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client input and returns when the connection drops.
func (c *client) readPump() {
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(c.pong))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(c.pong)) })
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub is an http.Handler that upgrades spectators to WebSocket and fans
// frames out to them. It is safe for concurrent use.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	timing   keepalive

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub returns an empty hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// spectating is read-only, so any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log,
		timing:  keepalive{write: writeWait, pong: pongWait, ping: pingPeriod},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the spectator until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("spectator upgrade failed", zap.Error(err))
		return
	}
	c := &client{ws: ws, send: make(chan []byte, sendBuffer), keepalive: h.timing}
	if !h.add(c) {
		ws.Close()
		return
	}
	h.log.Info("spectator joined", zap.String("remote", r.RemoteAddr))

	go c.writePump()
	c.readPump()
	h.remove(c)
	h.log.Info("spectator left", zap.String("remote", r.RemoteAddr))
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Len returns the number of connected spectators.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends f to every spectator. Slow spectators miss frames.
func (h *Hub) Broadcast(f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(b)
	}
	return nil
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
