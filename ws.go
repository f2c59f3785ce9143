package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"transit-motion-visualizer/motion"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait = 10 * time.Second
	// sendBuffer is how many frames a client may fall behind before it is dropped.
	sendBuffer = 64
)

// wsClient owns one connection; only its writePump writes to conn.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// wsHub is the rendering sink: it keeps the latest entity per vehicle and
// pushes buffered changes to every connected client on Flush.
type wsHub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	latest  map[string]Entity
	pending map[string]Entity
	removed []string
	logger  *slog.Logger
}

func newHub() *wsHub {
	return &wsHub{
		clients: make(map[*wsClient]struct{}),
		latest:  make(map[string]Entity),
		pending: make(map[string]Entity),
		logger:  slog.With("component", "ws"),
	}
}

// Upsert implements motion.Sink.
func (h *wsHub) Upsert(e motion.Entity) {
	ent := entityFrom(e)
	h.mu.Lock()
	h.latest[ent.ID] = ent
	h.pending[ent.ID] = ent
	h.mu.Unlock()
}

// Remove implements motion.Sink.
func (h *wsHub) Remove(id string) {
	h.mu.Lock()
	delete(h.latest, id)
	delete(h.pending, id)
	h.removed = append(h.removed, id)
	h.mu.Unlock()
}

// Flush queues everything buffered since the previous flush as one message.
// It never waits on a connection: a client whose queue is full is dropped.
func (h *wsHub) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) == 0 && len(h.removed) == 0 {
		return
	}
	msg := entityMessage{
		Action:   actionUpdate,
		Entities: sortedEntities(h.pending),
		Removed:  h.removed,
	}
	h.pending = make(map[string]Entity)
	h.removed = nil

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal update", "error", err)
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping slow websocket client")
			h.unregisterLocked(c)
		}
	}
}

func (h *wsHub) snapshot() []Entity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sortedEntities(h.latest)
}

func (h *wsHub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}

	// Queue the snapshot before joining the broadcast so the client
	// never sees an update ahead of it.
	h.mu.Lock()
	data, _ := json.Marshal(entityMessage{Action: actionSnapshot, Entities: sortedEntities(h.latest)})
	c.send <- data
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go h.readPump(c)
}

func (h *wsHub) unregister(c *wsClient) {
	h.mu.Lock()
	h.unregisterLocked(c)
	h.mu.Unlock()
}

func (h *wsHub) unregisterLocked(c *wsClient) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *wsHub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func sortedEntities(m map[string]Entity) []Entity {
	out := make([]Entity, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
