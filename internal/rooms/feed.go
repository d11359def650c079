package rooms

import "errors"

// ErrIndexMissing means the store cannot serve the equality+order+limit
// query because the composite index is absent. Never surfaced to users;
// it triggers the monitor's fallback subscription.
var ErrIndexMissing = errors.New("required composite index is missing")

// RawSession is one undecoded feed record. Field types are whatever the
// store delivered; the monitor repairs them field by field.
type RawSession map[string]interface{}

// Subscription is a live, cancellable batch stream. Batches closes when
// the stream ends; Err reports why (nil on plain Unsubscribe).
type Subscription interface {
	Batches() <-chan []RawSession
	Err() error
	Unsubscribe()
}

// SessionFeed delivers ordered, replace-on-update session batches.
// SubscribeActive needs the composite index and may fail with
// ErrIndexMissing; SubscribeRecent is the order+limit-only degraded
// form that always works.
type SessionFeed interface {
	SubscribeActive(limit int) (Subscription, error)
	SubscribeRecent(limit int) (Subscription, error)
}
