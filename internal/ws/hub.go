package ws

import (
	"encoding/json"
	"sync"
	"time"

	"microsite-shop/internal/logger"

	"github.com/gofiber/contrib/websocket"
)

// Event types pushed to the admin dashboard.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventStockUpdate        = "stock_update"
)

// Event is one message on the admin feed.
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// writeWait bounds each socket write so one stalled client cannot hold the hub.
const writeWait = 5 * time.Second

// Client is the part of a socket the hub writes to. *websocket.Conn satisfies it.
type Client interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans admin events out to every connected dashboard socket.
type Hub struct {
	Clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	log := logger.Get()
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Debug("admin feed client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					log.WithError(err).Debug("admin feed client dropped")
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues evt for broadcast. When the queue is full the event is dropped
// so request handlers never wait on slow sockets.
func (h *Hub) Publish(evt Event) {
	msg, err := json.Marshal(evt)
	if err != nil {
		logger.Get().WithError(err).WithField("event", evt.Type).Warn("admin feed: marshal event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		logger.Get().WithField("event", evt.Type).Warn("admin feed: queue full, event dropped")
	}
}

// ClientCount returns the number of connected sockets.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
