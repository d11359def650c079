package rooms

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
)

const defaultPollInterval = 3 * time.Second

// GormFeed serves the session feed off the relational store by polling.
// The indexed subscription demands the composite (active, updated_at)
// index; without it the query is refused up front so the monitor can
// fall back, mirroring how an external store rejects unindexed
// equality+order queries.
type GormFeed struct {
	DB       *gorm.DB
	Interval time.Duration
}

func (f *GormFeed) interval() time.Duration {
	if f.Interval > 0 {
		return f.Interval
	}
	return defaultPollInterval
}

func (f *GormFeed) SubscribeActive(limit int) (Subscription, error) {
	if !f.DB.Migrator().HasIndex(&models.Session{}, "idx_sessions_active_updated") {
		return nil, ErrIndexMissing
	}
	query := func() ([]RawSession, error) {
		var rows []map[string]interface{}
		err := f.DB.Table("sessions").
			Where("active = ?", true).
			Order("updated_at DESC").
			Limit(limit).
			Find(&rows).Error
		return toRaw(rows), err
	}
	return newPollSubscription(query, f.interval()), nil
}

func (f *GormFeed) SubscribeRecent(limit int) (Subscription, error) {
	query := func() ([]RawSession, error) {
		var rows []map[string]interface{}
		err := f.DB.Table("sessions").
			Order("updated_at DESC").
			Limit(limit).
			Find(&rows).Error
		return toRaw(rows), err
	}
	return newPollSubscription(query, f.interval()), nil
}

func toRaw(rows []map[string]interface{}) []RawSession {
	out := make([]RawSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawSession(row))
	}
	return out
}

// pollSubscription turns a repeated query into a batch stream. The
// batch channel holds one pending batch; a newer batch replaces an
// undelivered older one (replace-on-update, never a merge).
type pollSubscription struct {
	batches chan []RawSession
	stop    chan struct{}
	once    sync.Once

	mu  sync.Mutex
	err error
}

func newPollSubscription(query func() ([]RawSession, error), interval time.Duration) *pollSubscription {
	s := &pollSubscription{
		batches: make(chan []RawSession, 1),
		stop:    make(chan struct{}),
	}
	go s.loop(query, interval)
	return s
}

func (s *pollSubscription) loop(query func() ([]RawSession, error), interval time.Duration) {
	defer close(s.batches)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		batch, err := query()
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
		s.push(batch)
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

func (s *pollSubscription) push(batch []RawSession) {
	for {
		select {
		case s.batches <- batch:
			return
		default:
			select {
			case <-s.batches: // drop the undelivered batch
			default:
			}
		}
	}
}

func (s *pollSubscription) Batches() <-chan []RawSession {
	return s.batches
}

func (s *pollSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *pollSubscription) Unsubscribe() {
	s.once.Do(func() { close(s.stop) })
}
