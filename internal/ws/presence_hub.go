package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/edulive/tutorlive_backend/internal/presence"
)

// staleTick re-derives the tutor list even without new heartbeats, so
// records crossing the freshness boundary disappear on time.
const staleTick = 5 * time.Second

// TutorListPayload is pushed to student clients watching for available
// homework tutors. Each payload fully replaces the previous one.
type TutorListPayload struct {
	Type   string            `json:"type"`
	Tutors []presence.Record `json:"tutors"`
}

// PresenceHub fans the usable-tutor projection out to student clients.
// The projection is recomputed from the store on every refresh trigger
// and on a staleness tick; there is no incremental diffing.
type PresenceHub struct {
	store      *presence.Store
	register   chan *client
	unregister chan *client
	refresh    chan struct{}
}

func NewPresenceHub(store *presence.Store) *PresenceHub {
	return &PresenceHub{
		store:      store,
		register:   make(chan *client),
		unregister: make(chan *client),
		refresh:    make(chan struct{}, 1),
	}
}

// Refresh nudges the hub to rebroadcast; coalesced, non-blocking, safe
// from any goroutine.
func (h *PresenceHub) Refresh() {
	if h == nil {
		return
	}
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

func (h *PresenceHub) Run() {
	ticker := time.NewTicker(staleTick)
	defer ticker.Stop()
	clients := make(map[*client]struct{})
	for {
		select {
		case c := <-h.register:
			clients[c] = struct{}{}
			// late joiners get the current projection immediately
			if data, ok := h.payload(); ok {
				h.deliver(clients, c, data)
			}
		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
		case <-h.refresh:
			h.broadcast(clients)
		case <-ticker.C:
			h.broadcast(clients)
		}
	}
}

func (h *PresenceHub) payload() ([]byte, bool) {
	tutors := presence.UsableTutors(h.store.SnapshotHomework(), time.Now())
	data, err := json.Marshal(TutorListPayload{Type: "tutors", Tutors: tutors})
	if err != nil {
		log.Printf("presence hub: marshal: %v", err)
		return nil, false
	}
	return data, true
}

func (h *PresenceHub) broadcast(clients map[*client]struct{}) {
	if len(clients) == 0 {
		return
	}
	data, ok := h.payload()
	if !ok {
		return
	}
	for c := range clients {
		h.deliver(clients, c, data)
	}
}

func (h *PresenceHub) deliver(clients map[*client]struct{}, c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		delete(clients, c)
		close(c.send)
		c.conn.Close()
	}
}
