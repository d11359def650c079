package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edulive/tutorlive_backend/internal/models"
	"github.com/edulive/tutorlive_backend/internal/presence"
	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/ws"
)

type PresenceController struct {
	Store *presence.Store
	Hubs  *ws.Hubs
}

type heartbeatRequest struct {
	Status   string `json:"status" binding:"required"`
	RoomMode string `json:"room_mode"`
}

// Heartbeat overwrites the calling tutor's presence record. Best
// effort by design: a tutor that stops calling this simply goes stale
// and drops out of observer views.
func (pc *PresenceController) Heartbeat(c *gin.Context) {
	uVal, _ := c.Get("user")
	user := uVal.(models.User)

	var req heartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case presence.StatusOffline, presence.StatusWaiting, presence.StatusBusy:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	mode := strings.ToLower(strings.TrimSpace(req.RoomMode))
	switch mode {
	case "", presence.ModeHomework, presence.ModeSession:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_mode"})
		return
	}

	pc.Store.Publish(presence.Record{
		UID:         user.UserID,
		DisplayName: user.FullName,
		Email:       user.Email,
		RoomID:      rooms.HomeworkRoomID(user.UserID),
		Status:      status,
		RoomMode:    mode,
	})
	if pc.Hubs != nil {
		pc.Hubs.Presence.Refresh()
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Tutors returns the current usable-tutor projection, same shape the
// websocket feed pushes.
func (pc *PresenceController) Tutors(c *gin.Context) {
	tutors := presence.UsableTutors(pc.Store.SnapshotHomework(), time.Now())
	c.JSON(http.StatusOK, gin.H{"data": tutors})
}
