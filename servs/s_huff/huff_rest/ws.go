package huff_rest

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
)

const (
	writeWait = 5 * time.Second

	// sendBuffer is the number of events queued per client before it is
	// dropped as too slow.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection. Only its writer goroutine writes to
// conn.
type client struct {
	conn    *websocket.Conn
	subject string
	send    chan []byte
}

// Hub stores the active websocket connections and fans run events out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWS upgrades the connection, greets the client and keeps it
// registered until it disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	subject, _ := SubjectFromContext(r.Context())
	c := &client{conn: conn, subject: subject, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.enqueue(c, huff_api.Event{Type: constant.EventHello})
	h.mu.Unlock()

	go h.writePump(c)
	h.log.Debug().Str("sub", subject).Msg("websocket client connected")

	// reads only detect the close; clients have nothing to send
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

// Broadcast queues a run event for every client without waiting on the
// network.
func (h *Hub) Broadcast(info huff_api.RunInfo) {
	ev := huff_api.Event{Type: constant.EventRun, Run: &info}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.enqueue(c, ev)
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

// enqueue must be called with mu held. A client with a full queue is removed.
func (h *Hub) enqueue(c *client, ev huff_api.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("type", ev.Type).Msg("marshal websocket event")
		return
	}
	select {
	case c.send <- msg:
	default:
		h.log.Debug().Str("sub", c.subject).Msg("dropping slow websocket client")
		h.remove(c)
	}
}

// remove must be called with mu held.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	_ = c.conn.Close()
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	h.remove(c)
	h.mu.Unlock()
}

func (h *Hub) writePump(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Str("sub", c.subject).Msg("websocket write failed")
			h.drop(c)
			return
		}
	}
}
