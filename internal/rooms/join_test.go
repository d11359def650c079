package rooms

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulive/tutorlive_backend/internal/models"
)

type fakeBookings struct {
	bookings map[string]models.Booking
}

func (f *fakeBookings) BookingByID(id string) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, errors.New("booking not found")
	}
	return b, nil
}

func TestResolveHomeworkWalkIn(t *testing.T) {
	r := &Router{Bookings: &fakeBookings{}}
	target, err := r.Resolve(JoinIntent{Mode: ModeHomework, TutorUID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "hw_t1", target.RoomID)
	assert.Equal(t, ModeHomework, target.Mode)
}

func TestResolveSessionInsideWindow(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{ID: "b1", RoomID: "room-9", StartTime: start.UnixMilli()}
	r := &Router{
		Bookings: &fakeBookings{bookings: map[string]models.Booking{"b1": booking}},
		Now:      func() time.Time { return start.Add(5 * time.Minute) },
	}
	target, err := r.Resolve(JoinIntent{Mode: ModeSession, BookingID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "room-9", target.RoomID)
	assert.Equal(t, ModeSession, target.Mode)
}

func TestResolveSessionRefusedOutsideWindow(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{ID: "b1", StartTime: start.UnixMilli()}
	r := &Router{
		Bookings: &fakeBookings{bookings: map[string]models.Booking{"b1": booking}},
		Now:      func() time.Time { return start.Add(-16 * time.Minute) },
	}
	_, err := r.Resolve(JoinIntent{Mode: ModeSession, BookingID: "b1"})
	assert.ErrorIs(t, err, ErrNotAdmitted)
}

func TestResolveSessionDerivesRoomFromBookingID(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{ID: "b1", StartTime: start.UnixMilli()}
	r := &Router{
		Bookings: &fakeBookings{bookings: map[string]models.Booking{"b1": booking}},
		Now:      func() time.Time { return start },
	}
	target, err := r.Resolve(JoinIntent{Mode: ModeSession, BookingID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "booking_b1", target.RoomID)
}

func TestResolveSessionUnspecifiedDurationUsesDefault(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{ID: "b1", StartTime: start.UnixMilli()} // nil duration
	r := &Router{
		Bookings: &fakeBookings{bookings: map[string]models.Booking{"b1": booking}},
		Now:      func() time.Time { return start.Add(74 * time.Minute) },
	}
	_, err := r.Resolve(JoinIntent{Mode: ModeSession, BookingID: "b1"})
	assert.NoError(t, err, "74 min into a default 60-min slot is still inside the window")

	r.Now = func() time.Time { return start.Add(76 * time.Minute) }
	_, err = r.Resolve(JoinIntent{Mode: ModeSession, BookingID: "b1"})
	assert.ErrorIs(t, err, ErrNotAdmitted)
}

func TestResolveObserve(t *testing.T) {
	r := &Router{Bookings: &fakeBookings{}}
	target, err := r.Resolve(JoinIntent{Mode: ModeObserve, RoomID: "room-1"})
	require.NoError(t, err)
	assert.Equal(t, "room-1", target.RoomID)
	assert.Equal(t, ModeObserve, target.Mode)
}

func TestResolveRejectsMissingTargets(t *testing.T) {
	r := &Router{Bookings: &fakeBookings{}}
	for _, intent := range []JoinIntent{
		{Mode: ModeHomework},
		{Mode: ModeSession},
		{Mode: ModeObserve},
	} {
		_, err := r.Resolve(intent)
		assert.ErrorIs(t, err, ErrMissingTarget, "mode=%s", intent.Mode)
	}
	_, err := r.Resolve(JoinIntent{Mode: "karaoke"})
	assert.ErrorIs(t, err, ErrUnknownMode)
}
