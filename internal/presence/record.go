package presence

import "time"

// Tutor status values. Anything else is treated as unusable by the
// observer.
const (
	StatusOffline = "offline"
	StatusWaiting = "waiting"
	StatusBusy    = "busy"
)

// Room modes a tutor can publish.
const (
	ModeHomework = "homework"
	ModeSession  = "session"
)

// FreshnessWindow is how long a heartbeat keeps a record trustworthy.
// A record older than this is invisible to observers regardless of its
// status; staleness is the only race-safety mechanism readers need.
const FreshnessWindow = 30 * time.Second

// Record is a tutor's self-reported live status. Single writer (the
// owning tutor's client), many readers. Never deleted; it just goes
// stale.
type Record struct {
	UID          string    `json:"uid"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	RoomID       string    `json:"room_id"`
	Status       string    `json:"status"`
	RoomMode     string    `json:"room_mode,omitempty"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Fresh reports whether the record's heartbeat is inside the freshness
// window at the given instant.
func (r Record) Fresh(now time.Time) bool {
	return now.Sub(r.LastActiveAt) < FreshnessWindow
}
