package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulive/tutorlive_backend/internal/models"
	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/rtc"
)

type stubVerifier struct {
	uid string
	err error
}

func (s *stubVerifier) Verify(token string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.uid, s.uid + "@example.com", nil
}

type stubRoles struct{ role string }

func (s *stubRoles) RoleOf(uid string) (string, error) { return s.role, nil }

type stubMinter struct{ calls int }

func (s *stubMinter) Mint(identity, name string, g rtc.Grants) (string, string, error) {
	s.calls++
	return "tok", "wss://media.test", nil
}

type stubBookings struct{ booking *models.Booking }

func (s *stubBookings) BookingByID(id string) (models.Booking, error) {
	if s.booking == nil {
		return models.Booking{}, errors.New("booking not found")
	}
	return *s.booking, nil
}

func newRTCRouter(ctrl *RTCController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/rtc/token", ctrl.Token)
	r.POST("/api/v1/rooms/join", ctrl.Join)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenEndpointHardenedRequiresAuth(t *testing.T) {
	minter := &stubMinter{}
	ctrl := &RTCController{
		Issuer: &rtc.Issuer{
			Verifier:    &stubVerifier{uid: "u1"},
			Roles:       &stubRoles{role: "student"},
			Minter:      minter,
			RequireAuth: true,
		},
	}
	w := postJSON(t, newRTCRouter(ctrl), "/api/v1/rtc/token", gin.H{"room": "r1", "name": "Amy"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, minter.calls)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestTokenEndpointRelaxedAnonymous(t *testing.T) {
	ctrl := &RTCController{
		Issuer: &rtc.Issuer{
			Verifier: &stubVerifier{err: errors.New("no token")},
			Roles:    &stubRoles{},
			Minter:   &stubMinter{},
			Suffix:   func() (string, error) { return "xyz789", nil },
		},
	}
	w := postJSON(t, newRTCRouter(ctrl), "/api/v1/rtc/token", gin.H{"room": "r1", "name": "Guest"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp["token"])
	assert.Equal(t, "wss://media.test", resp["url"])
	assert.Equal(t, "r1", resp["room_name"])
	assert.Equal(t, "student", resp["role"])
	assert.Equal(t, "student_anon_xyz789", resp["identity"])
}

func TestJoinRefusedOutsideWindowWithoutMinting(t *testing.T) {
	start := time.Now().Add(2 * time.Hour) // window opens in 1h45m
	minter := &stubMinter{}
	ctrl := &RTCController{
		Issuer: &rtc.Issuer{
			Verifier: &stubVerifier{uid: "u1"},
			Roles:    &stubRoles{role: "student"},
			Minter:   minter,
		},
		Router: &rooms.Router{Bookings: &stubBookings{booking: &models.Booking{
			ID:        "b1",
			StartTime: start.UnixMilli(),
		}}},
	}
	w := postJSON(t, newRTCRouter(ctrl), "/api/v1/rooms/join", gin.H{
		"mode": "session", "booking_id": "b1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, minter.calls, "router must refuse locally before the issuer is contacted")
}

func TestJoinHomeworkWalkIn(t *testing.T) {
	ctrl := &RTCController{
		Issuer: &rtc.Issuer{
			Verifier: &stubVerifier{uid: "u1"},
			Roles:    &stubRoles{role: "student"},
			Minter:   &stubMinter{},
		},
		Router: &rooms.Router{Bookings: &stubBookings{}},
	}
	r := newRTCRouter(ctrl)
	data, _ := json.Marshal(gin.H{"mode": "homework", "tutor_id": "t9"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/join", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hw_t9", resp["room_name"])
	assert.Equal(t, "homework", resp["mode"])
	assert.Equal(t, "student_u1", resp["identity"])
}

func TestJoinUnknownModeRejected(t *testing.T) {
	ctrl := &RTCController{
		Issuer: &rtc.Issuer{Verifier: &stubVerifier{}, Roles: &stubRoles{}, Minter: &stubMinter{}},
		Router: &rooms.Router{Bookings: &stubBookings{}},
	}
	w := postJSON(t, newRTCRouter(ctrl), "/api/v1/rooms/join", gin.H{"mode": "karaoke", "room_id": "r1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
