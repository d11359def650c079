package ws

import "github.com/edulive/tutorlive_backend/internal/presence"

type Hubs struct {
	Presence *PresenceHub
	Monitor  *MonitorHub
}

func NewHubs(store *presence.Store) *Hubs {
	return &Hubs{
		Presence: NewPresenceHub(store),
		Monitor:  NewMonitorHub(),
	}
}
