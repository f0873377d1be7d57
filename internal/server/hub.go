package server

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
)

// clientBuffer is the per-client outbound queue; a client that falls this
// far behind is dropped rather than blocking the pipeline.
const clientBuffer = 16

// Hub broadcasts formatted alerts to connected WebSocket clients.
// Delivery is best-effort and lossy; the feed is a debugging surface,
// not a delivery channel.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan string
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  log.New(os.Stdout, "[feed] ", log.LstdFlags),
		clients: make(map[*websocket.Conn]chan string),
	}
}

// Broadcast queues text for every connected client, dropping clients
// whose buffers are full.
func (h *Hub) Broadcast(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, ch := range h.clients {
		select {
		case ch <- text:
		default:
			h.logger.Printf("dropping slow feed client %s", conn.RemoteAddr())
			close(ch)
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// handleConnect upgrades the request and streams alerts until the client
// disconnects or falls behind.
func (h *Hub) handleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade: %v", err)
		return
	}

	ch := make(chan string, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	go h.writeLoop(conn, ch)
}

// writeLoop forwards queued alerts to one client.
func (h *Hub) writeLoop(conn *websocket.Conn, ch chan string) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[conn]; ok {
			close(ch)
			delete(h.clients, conn)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for text := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			return
		}
	}
}
