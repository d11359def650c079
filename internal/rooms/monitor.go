package rooms

import (
	"encoding/json"
	"log"
	"sync"
)

// DefaultMonitorLimit caps how many recent sessions the admin view
// tracks.
const DefaultMonitorLimit = 50

// SessionStudent is one participant entry inside a session row.
type SessionStudent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionRow is the admin view projection of one live room. Rebuilt
// from the raw feed on every batch, never persisted by the monitor.
type SessionRow struct {
	RoomID        string           `json:"room_id"`
	Active        bool             `json:"active"`
	TutorUID      string           `json:"tutor_uid"`
	TutorName     string           `json:"tutor_name"`
	TutorEmail    string           `json:"tutor_email"`
	Students      []SessionStudent `json:"students"`
	StudentsCount int              `json:"students_count"`
	StartedAt     int64            `json:"started_at"`
	UpdatedAt     int64            `json:"updated_at"`
}

type monitorState int

const (
	stateIndexed monitorState = iota
	stateFallback
)

// Monitor keeps the admin session view live. It starts on the indexed
// subscription and on failure drops, once and for the rest of its
// lifetime, to the unindexed fallback with local active filtering.
// Exactly one subscription is held at any moment.
type Monitor struct {
	feed    SessionFeed
	limit   int
	onBatch func([]SessionRow)

	mu      sync.Mutex
	state   monitorState
	sub     Subscription
	stopped bool
	done    chan struct{}
}

// NewMonitor wires a monitor to a feed; onBatch receives every mapped
// batch in delivery order, each fully replacing the previous one.
func NewMonitor(feed SessionFeed, onBatch func([]SessionRow)) *Monitor {
	return &Monitor{
		feed:    feed,
		limit:   DefaultMonitorLimit,
		onBatch: onBatch,
		done:    make(chan struct{}),
	}
}

// Start opens the initial subscription and begins applying batches.
// Failure to even construct the indexed query goes straight to
// fallback.
func (m *Monitor) Start() error {
	sub, err := m.feed.SubscribeActive(m.limit)
	if err != nil {
		log.Printf("session monitor: indexed subscription unavailable (%v), using fallback", err)
		return m.startFallback()
	}
	m.mu.Lock()
	m.state = stateIndexed
	m.sub = sub
	m.mu.Unlock()
	go m.run(sub, false)
	return nil
}

func (m *Monitor) startFallback() error {
	sub, err := m.feed.SubscribeRecent(m.limit)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	m.state = stateFallback
	m.sub = sub
	m.mu.Unlock()
	go m.run(sub, true)
	return nil
}

func (m *Monitor) run(sub Subscription, fallback bool) {
	for batch := range sub.Batches() {
		rows := mapRows(batch)
		if fallback {
			rows = filterActive(rows)
		}
		m.onBatch(rows)
	}

	m.mu.Lock()
	stopped := m.stopped
	m.mu.Unlock()
	if stopped {
		return
	}

	if err := sub.Err(); err != nil && !fallback {
		// Sticky one-way transition; the previous subscription is
		// released before the fallback one starts.
		log.Printf("session monitor: indexed subscription failed (%v), switching to fallback", err)
		sub.Unsubscribe()
		if ferr := m.startFallback(); ferr != nil {
			log.Printf("session monitor: fallback subscription failed: %v", ferr)
			close(m.done)
		}
		return
	}
	if err := sub.Err(); err != nil {
		log.Printf("session monitor: fallback subscription ended: %v", err)
	}
	close(m.done)
}

// Stop releases whichever subscription is live.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	sub := m.sub
	m.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

func filterActive(rows []SessionRow) []SessionRow {
	out := rows[:0]
	for _, row := range rows {
		if row.Active {
			out = append(out, row)
		}
	}
	return out
}

func mapRows(batch []RawSession) []SessionRow {
	rows := make([]SessionRow, 0, len(batch))
	for _, raw := range batch {
		rows = append(rows, mapRow(raw))
	}
	return rows
}

func mapRow(raw RawSession) SessionRow {
	row := SessionRow{
		RoomID:     flexString(raw["room_id"]),
		Active:     flexBool(raw["active"]),
		TutorUID:   flexString(raw["tutor_uid"]),
		TutorName:  flexString(raw["tutor_name"]),
		TutorEmail: flexString(raw["tutor_email"]),
		Students:   parseStudents(raw["students"]),
		StartedAt:  flexMillis(raw["started_at"]),
		UpdatedAt:  flexMillis(raw["updated_at"]),
	}
	if n, ok := flexInt(raw["students_count"]); ok {
		row.StudentsCount = n
	} else {
		row.StudentsCount = len(row.Students)
	}
	return row
}

func parseStudents(v interface{}) []SessionStudent {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil
		}
		var students []SessionStudent
		if err := json.Unmarshal([]byte(x), &students); err != nil {
			return nil
		}
		return students
	case []byte:
		return parseStudents(string(x))
	case []interface{}:
		students := make([]SessionStudent, 0, len(x))
		for _, item := range x {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			students = append(students, SessionStudent{
				ID:   flexString(entry["id"]),
				Name: flexString(entry["name"]),
			})
		}
		return students
	default:
		return nil
	}
}
