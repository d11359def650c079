package ws

import (
	"encoding/json"
	"log"

	"github.com/edulive/tutorlive_backend/internal/rooms"
)

// SessionsPayload carries one full session batch to admin dashboards.
type SessionsPayload struct {
	Type     string             `json:"type"`
	Sessions []rooms.SessionRow `json:"sessions"`
}

// MonitorHub relays the live room monitor's batches to admin clients.
// It keeps the latest batch so a freshly connected admin sees the
// current state without waiting for the next feed delivery.
type MonitorHub struct {
	register   chan *client
	unregister chan *client
	batches    chan []rooms.SessionRow
}

func NewMonitorHub() *MonitorHub {
	return &MonitorHub{
		register:   make(chan *client),
		unregister: make(chan *client),
		batches:    make(chan []rooms.SessionRow, 16),
	}
}

// Publish hands a mapped batch to the hub; called by the monitor's
// onBatch callback.
func (h *MonitorHub) Publish(rows []rooms.SessionRow) {
	if h == nil {
		return
	}
	h.batches <- rows
}

func (h *MonitorHub) Run() {
	clients := make(map[*client]struct{})
	var latest []byte
	for {
		select {
		case c := <-h.register:
			clients[c] = struct{}{}
			if latest != nil {
				h.deliver(clients, c, latest)
			}
		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
		case rows := <-h.batches:
			data, err := json.Marshal(SessionsPayload{Type: "sessions", Sessions: rows})
			if err != nil {
				log.Printf("monitor hub: marshal: %v", err)
				continue
			}
			latest = data
			for c := range clients {
				h.deliver(clients, c, data)
			}
		}
	}
}

func (h *MonitorHub) deliver(clients map[*client]struct{}, c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		delete(clients, c)
		close(c.send)
		c.conn.Close()
	}
}
