package presence

import (
	"sync"
	"time"
)

// Store holds the live presence records in memory. Each record has a
// single writer (the owning tutor) so publishes never contend with each
// other; the lock only serializes writers against snapshot readers.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Publish overwrites the tutor's record and stamps the heartbeat.
// Fire-and-forget: there is no delete path, absence of fresh heartbeats
// is the offline signal.
func (s *Store) Publish(rec Record) {
	rec.LastActiveAt = s.now()
	s.mu.Lock()
	s.records[rec.UID] = rec
	s.mu.Unlock()
}

// Get returns the record for uid, fresh or not.
func (s *Store) Get(uid string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[uid]
	return rec, ok
}

// SnapshotHomework is the server-side pre-filter of the presence feed:
// records currently published in homework mode. Staleness and status
// filtering stay client-side in the observer.
func (s *Store) SnapshotHomework() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.RoomMode == ModeHomework {
			out = append(out, rec)
		}
	}
	return out
}

// Snapshot returns every record regardless of mode.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}
