// Package admission decides whether a scheduled booking may be joined
// right now. The window opens shortly before the scheduled start and
// closes the same margin after the scheduled end; nothing but the wall
// clock moves the boolean, so callers re-evaluate on a timer.
package admission

import "time"

const (
	// DefaultDurationMinutes applies when a booking carries no duration.
	// Single definition; both join eligibility and window display resolve
	// through it.
	DefaultDurationMinutes = 60

	// Grace is the entry margin on either side of the scheduled slot.
	Grace = 15 * time.Minute
)

// ResolveDuration maps an optional stored duration to concrete minutes.
// nil means unspecified; negative durations collapse to an instantaneous
// slot that still keeps both grace margins.
func ResolveDuration(durationMin *int) int {
	if durationMin == nil {
		return DefaultDurationMinutes
	}
	if *durationMin < 0 {
		return 0
	}
	return *durationMin
}

// Window returns the open and close instants for a booking slot.
func Window(start time.Time, durationMin int) (opensAt, closesAt time.Time) {
	if durationMin < 0 {
		durationMin = 0
	}
	opensAt = start.Add(-Grace)
	closesAt = start.Add(time.Duration(durationMin) * time.Minute).Add(Grace)
	return opensAt, closesAt
}

// IsAdmitted reports whether now falls inside the booking's entry
// window. A zero start time never admits.
func IsAdmitted(start time.Time, durationMin int, now time.Time) bool {
	if start.IsZero() {
		return false
	}
	opensAt, closesAt := Window(start, durationMin)
	return !now.Before(opensAt) && !now.After(closesAt)
}

// IsAdmittedMillis is the epoch-millisecond form used where bookings
// store their start as epoch-ms. startMs == 0 never admits.
func IsAdmittedMillis(startMs int64, durationMin int, now time.Time) bool {
	if startMs == 0 {
		return false
	}
	return IsAdmitted(time.UnixMilli(startMs), durationMin, now)
}
