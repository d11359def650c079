package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePublishOverwrites(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	s.Publish(Record{UID: "t1", DisplayName: "Amy", Status: StatusWaiting, RoomMode: ModeHomework})
	current = base.Add(10 * time.Second)
	s.Publish(Record{UID: "t1", DisplayName: "Amy", Status: StatusBusy, RoomMode: ModeHomework})

	got, ok := s.Get("t1")
	require.True(t, ok)
	assert.Equal(t, StatusBusy, got.Status)
	assert.Equal(t, base.Add(10*time.Second), got.LastActiveAt)
}

func TestSnapshotHomeworkFiltersMode(t *testing.T) {
	s := NewStore()
	s.Publish(Record{UID: "t1", Status: StatusWaiting, RoomMode: ModeHomework})
	s.Publish(Record{UID: "t2", Status: StatusBusy, RoomMode: ModeSession})
	s.Publish(Record{UID: "t3", Status: StatusWaiting})

	snap := s.SnapshotHomework()
	require.Len(t, snap, 1)
	assert.Equal(t, "t1", snap[0].UID)

	assert.Len(t, s.Snapshot(), 3)
}

func TestStoreHasNoDeletePath(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	s.Publish(Record{UID: "t1", Status: StatusWaiting, RoomMode: ModeHomework})
	current = base.Add(2 * FreshnessWindow)

	// The record survives going stale; only observers stop seeing it.
	got, ok := s.Get("t1")
	require.True(t, ok)
	assert.False(t, got.Fresh(current))
	assert.Empty(t, UsableTutors(s.SnapshotHomework(), current))
}
