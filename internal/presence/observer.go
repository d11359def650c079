package presence

import (
	"sort"
	"strings"
	"time"
)

// statusRank orders waiting ahead of busy ahead of anything else.
func statusRank(status string) int {
	switch status {
	case StatusWaiting:
		return 0
	case StatusBusy:
		return 1
	default:
		return 2
	}
}

// UsableTutors is the student-side projection of the presence feed:
// stale and offline records are dropped, the rest are ordered waiting
// first, then busy, tie-broken by display name case-insensitively.
// Pure function, re-derived from scratch on every feed update.
func UsableTutors(records []Record, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !rec.Fresh(now) {
			continue
		}
		if rec.Status == StatusOffline {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := statusRank(out[i].Status), statusRank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out
}
