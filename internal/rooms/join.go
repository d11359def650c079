package rooms

import (
	"errors"
	"fmt"
	"time"

	"github.com/edulive/tutorlive_backend/internal/admission"
	"github.com/edulive/tutorlive_backend/internal/models"
)

type JoinMode string

const (
	// ModeHomework is a walk-in join to a tutor's standing homework room.
	ModeHomework JoinMode = "homework"
	// ModeSession is a scheduled 1-on-1 booking join.
	ModeSession JoinMode = "session"
	// ModeObserve is an admin quiet join to an arbitrary room.
	ModeObserve JoinMode = "observe"
)

var (
	// ErrNotAdmitted means the booking's entry window is closed; the
	// router refuses locally, no capability request is made.
	ErrNotAdmitted = errors.New("outside the booking admission window")

	ErrUnknownMode   = errors.New("unknown join mode")
	ErrMissingTarget = errors.New("join intent is missing its target")
)

// BookingSource loads bookings for scheduled joins.
type BookingSource interface {
	BookingByID(id string) (models.Booking, error)
}

// JoinIntent is what a client asks for; exactly one target field is
// meaningful per mode.
type JoinIntent struct {
	Mode      JoinMode
	TutorUID  string // homework walk-in
	BookingID string // scheduled session
	RoomID    string // observer join
}

// JoinTarget is the resolved room the capability request will name.
type JoinTarget struct {
	RoomID string
	Mode   JoinMode
}

// HomeworkRoomID is a tutor's stable walk-in room identifier; it needs
// no room row.
func HomeworkRoomID(tutorUID string) string {
	return "hw_" + tutorUID
}

// BookingRoomID derives the room for a booking that carries no explicit
// room reference.
func BookingRoomID(bookingID string) string {
	return "booking_" + bookingID
}

// Router resolves join intents into concrete room targets. Scheduled
// joins are gated by the admission window; homework walk-ins are not
// (presence already implies reachability, and joining a busy tutor is
// the caller's choice).
type Router struct {
	Bookings BookingSource
	Now      func() time.Time
}

func (r *Router) Resolve(intent JoinIntent) (JoinTarget, error) {
	switch intent.Mode {
	case ModeHomework:
		if intent.TutorUID == "" {
			return JoinTarget{}, ErrMissingTarget
		}
		return JoinTarget{RoomID: HomeworkRoomID(intent.TutorUID), Mode: ModeHomework}, nil

	case ModeSession:
		if intent.BookingID == "" {
			return JoinTarget{}, ErrMissingTarget
		}
		booking, err := r.Bookings.BookingByID(intent.BookingID)
		if err != nil {
			return JoinTarget{}, fmt.Errorf("booking lookup: %w", err)
		}
		now := time.Now()
		if r.Now != nil {
			now = r.Now()
		}
		duration := admission.ResolveDuration(booking.DurationMin)
		if !admission.IsAdmittedMillis(booking.StartTime, duration, now) {
			return JoinTarget{}, ErrNotAdmitted
		}
		roomID := booking.RoomID
		if roomID == "" {
			roomID = BookingRoomID(booking.ID)
		}
		return JoinTarget{RoomID: roomID, Mode: ModeSession}, nil

	case ModeObserve:
		if intent.RoomID == "" {
			return JoinTarget{}, ErrMissingTarget
		}
		return JoinTarget{RoomID: intent.RoomID, Mode: ModeObserve}, nil

	default:
		return JoinTarget{}, ErrUnknownMode
	}
}
