package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, status string, age time.Duration, now time.Time) Record {
	return Record{
		UID:          "uid-" + name,
		DisplayName:  name,
		Status:       status,
		RoomMode:     ModeHomework,
		LastActiveAt: now.Add(-age),
	}
}

func TestUsableTutorsDropsStale(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	in := []Record{
		rec("Amy", StatusWaiting, 31*time.Second, now),
		rec("Bob", StatusWaiting, 29*time.Second, now),
	}
	out := UsableTutors(in, now)
	require.Len(t, out, 1)
	assert.Equal(t, "Bob", out[0].DisplayName)
}

func TestUsableTutorsDropsOffline(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	in := []Record{
		rec("Amy", StatusOffline, time.Second, now),
		rec("Bob", StatusBusy, time.Second, now),
	}
	out := UsableTutors(in, now)
	require.Len(t, out, 1)
	assert.Equal(t, "Bob", out[0].DisplayName)
}

func TestUsableTutorsOrdering(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	in := []Record{
		rec("Bob", StatusBusy, time.Second, now),
		rec("Amy", StatusWaiting, time.Second, now),
		rec("zed", StatusWaiting, time.Second, now),
	}
	out := UsableTutors(in, now)
	require.Len(t, out, 3)
	names := []string{out[0].DisplayName, out[1].DisplayName, out[2].DisplayName}
	assert.Equal(t, []string{"Amy", "zed", "Bob"}, names)
}

func TestUsableTutorsStaleBeatsStatus(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	// A waiting tutor with an expired heartbeat is invisible.
	in := []Record{rec("Amy", StatusWaiting, FreshnessWindow, now)}
	assert.Empty(t, UsableTutors(in, now))
}
