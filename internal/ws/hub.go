package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/logger"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 4096

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 64
)

// upgrader configures the WebSocket upgrade parameters.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins. In production, restrict this to known origins.
		return true
	},
}

// client represents a single WebSocket connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	subs map[string]bool // subscribed event types; empty means all
	mu   sync.RWMutex
}

// subscribeMsg is the JSON message a client sends to narrow or widen the
// event types it receives, e.g. {"subscribe":["trade.settled"]}.
type subscribeMsg struct {
	Subscribe   []string `json:"subscribe"`
	Unsubscribe []string `json:"unsubscribe"`
}

// Hub fans escrow lifecycle events out to connected WebSocket clients. It
// implements escrow.Emitter, so the engine can publish to it directly.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan escrow.Event
	register   chan *client
	unregister chan *client
	done       chan struct{} // closed when Run exits; unblocks pending sends
	mu         sync.RWMutex
}

// NewHub creates a hub with no connected clients. Run must be started for
// events to flow.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan escrow.Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

var _ escrow.Emitter = (*Hub)(nil)

// Emit implements escrow.Emitter. Events are dropped when the broadcast
// buffer is full; the hub never blocks the engine.
func (h *Hub) Emit(evt escrow.Event) {
	select {
	case h.broadcast <- evt:
	default:
		logger.L().Warn().Str("event", evt.Type).Msg("ws: dropping event, broadcast buffer full")
	}
}

// Run starts the hub's main event loop. It should be called in a goroutine
// and exits when the provided context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			logger.L().Info().Int("total_clients", h.clientCount()).Msg("ws: client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			logger.L().Info().Int("total_clients", h.clientCount()).Msg("ws: client disconnected")

		case evt := <-h.broadcast:
			data, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for c := range h.clients {
				if !c.wants(evt.Type) {
					continue
				}
				select {
				case c.send <- data:
				default:
					// Client's send buffer is full; drop the message.
					logger.L().Warn().Msg("ws: dropping message for slow client")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub.
// GET /ws/events
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	cl := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		subs: make(map[string]bool),
	}

	if !h.add(cl) {
		// Hub already shut down; refuse the connection.
		conn.Close()
		return
	}

	go cl.writePump()
	go cl.readPump()
}

// add hands a client to the hub loop. It reports false when the hub has
// already shut down, so callers never block on a loop that is gone.
func (h *Hub) add(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// remove hands a client back to the hub loop. Safe to call after shutdown;
// the loop's exit path already dropped every client.
func (h *Hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// clientCount returns the number of currently connected clients.
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// readPump reads messages from the WebSocket connection and handles
// subscription management requests from the client.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().Warn().Err(err).Msg("ws: unexpected close error")
			}
			return
		}

		var sub subscribeMsg
		if jsonErr := json.Unmarshal(message, &sub); jsonErr == nil &&
			(len(sub.Subscribe) > 0 || len(sub.Unsubscribe) > 0) {
			c.handleSubscription(sub)
		}
	}
}

// handleSubscription processes subscribe/unsubscribe requests.
func (c *client) handleSubscription(msg subscribeMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, typ := range msg.Subscribe {
		c.subs[typ] = true
	}
	for _, typ := range msg.Unsubscribe {
		delete(c.subs, typ)
	}
}

// wants reports whether the client should receive the given event type. A
// client with no explicit subscriptions receives everything.
func (c *client) wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.subs) == 0 {
		return true
	}
	return c.subs[eventType]
}

// writePump pumps messages from the hub to the WebSocket connection and
// sends periodic ping frames for keepalive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
