package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one connected admin dashboard
type Connection struct {
	ID   string
	Send chan []byte
}

// Hub fans live feed events out to admin dashboards. It implements
// service.Broadcaster.
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	stopped    chan struct{}

	logger *zap.Logger
}

// NewHub creates a hub; call Run to start it
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
}

// Run dispatches events until ctx is cancelled, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			n := len(h.conns)
			h.mu.Unlock()
			h.logger.Info("dashboard connected", zap.String("conn_id", conn.ID), zap.Int("connections", n))

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.logger.Info("dashboard disconnected", zap.String("conn_id", conn.ID))
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer, drop
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection. It returns false once the hub has stopped.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.stopped:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.stopped:
	}
}

// Broadcast queues an event for every dashboard. Events are dropped
// when the queue is full.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("drop unencodable event", zap.String("type", eventType), zap.Error(err))
		return
	}
	data, err := json.Marshal(&Message{Type: eventType, Payload: body})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("live feed queue full, event dropped", zap.String("type", eventType))
	}
}

// ConnectionCount returns the number of connected dashboards
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
