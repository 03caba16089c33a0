// Package push broadcasts published snapshots to connected WebSocket
// clients: a standard hub/register/broadcast arrangement around
// gorilla/websocket, the transport the example corpus's go.mod already
// pulls in for live-update delivery.
package push

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hidroalerta/floodcore/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks connected clients and fans a snapshot out to all of them. The
// zero value is not usable; construct with NewHub.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan domain.Snapshot
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan domain.Snapshot)}
}

// ServeHTTP upgrades the connection to a WebSocket and registers it to
// receive subsequent Broadcast calls until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("push: upgrade failed: %v", err)
		return
	}

	ch := make(chan domain.Snapshot, 4)
	h.register(conn, ch)
	defer h.unregister(conn)

	go h.readLoop(conn)
	h.writeLoop(conn, ch)
}

func (h *Hub) register(conn *websocket.Conn, ch chan domain.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = ch
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
	conn.Close()
}

// readLoop discards client messages but keeps reading so close frames and
// pings are handled; the protocol is server-push only.
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, ch chan domain.Snapshot) {
	for snap := range ch {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}

// Broadcast pushes a snapshot to every connected client. Slow or
// disconnected clients are dropped rather than allowed to back up the
// broadcaster; the next cycle's snapshot supersedes a missed one anyway.
func (h *Hub) Broadcast(snap domain.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, ch := range h.clients {
		select {
		case ch <- snap:
		default:
			log.Printf("push: client slow, dropping snapshot seq=%d", snap.Sequence)
			delete(h.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

// Count returns the number of currently registered clients, for
// diagnostics and tests.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
