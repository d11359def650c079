package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/rtc"
)

// RTCController fronts the capability issuer and the join router. The
// endpoints are unauthenticated at the routing layer on purpose: the
// issuer itself decides what an unverified caller may get, depending on
// the deployment's hardened/relaxed mode.
type RTCController struct {
	Issuer *rtc.Issuer
	Router *rooms.Router
	DB     *gorm.DB
}

type tokenRequest struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Room        string `json:"room" binding:"required"`
	BearerToken string `json:"bearer_token"`
}

// Token mints a join capability for one room.
func (rc *RTCController) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grant, err := rc.Issuer.Issue(rtc.JoinRequest{
		Room:        req.Room,
		Name:        req.Name,
		ClaimedRole: req.Role,
		BearerToken: bearerFrom(c, req.BearerToken),
	})
	if err != nil {
		c.JSON(rtcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(grant))
}

type joinRequest struct {
	Mode        string `json:"mode" binding:"required"`
	TutorID     string `json:"tutor_id"`
	BookingID   string `json:"booking_id"`
	RoomID      string `json:"room_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	BearerToken string `json:"bearer_token"`
}

// Join resolves a join intent into a room target, then mints the
// capability in the same round trip. Scheduled joins outside their
// admission window are refused here, before the issuer is involved.
func (rc *RTCController) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := rc.Router.Resolve(rooms.JoinIntent{
		Mode:      rooms.JoinMode(strings.ToLower(req.Mode)),
		TutorUID:  req.TutorID,
		BookingID: req.BookingID,
		RoomID:    req.RoomID,
	})
	if err != nil {
		c.JSON(joinErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	grant, err := rc.Issuer.Issue(rtc.JoinRequest{
		Room:        target.RoomID,
		Name:        req.Name,
		ClaimedRole: req.Role,
		BearerToken: bearerFrom(c, req.BearerToken),
	})
	if err != nil {
		c.JSON(rtcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if err := recordJoin(rc.DB, target, grant); err != nil {
		// the capability is already minted; session upkeep is best effort
		logSessionUpkeep("join", err)
	}
	resp := tokenResponse(grant)
	resp["mode"] = string(target.Mode)
	c.JSON(http.StatusOK, resp)
}

type leaveRequest struct {
	RoomID      string `json:"room_id" binding:"required"`
	BearerToken string `json:"bearer_token"`
}

// Leave updates the session projection when a participant departs.
func (rc *RTCController) Leave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grant, err := rc.Issuer.Issue(rtc.JoinRequest{
		Room:        req.RoomID,
		BearerToken: bearerFrom(c, req.BearerToken),
	})
	if err != nil {
		c.JSON(rtcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if err := recordLeave(rc.DB, req.RoomID, grant); err != nil {
		logSessionUpkeep("leave", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "left"})
}

func tokenResponse(grant rtc.JoinGrant) gin.H {
	return gin.H{
		"token":     grant.Token,
		"url":       grant.URL,
		"room_name": grant.Room,
		"identity":  grant.Identity,
		"role":      grant.Role,
		"name":      grant.Name,
	}
}

// bearerFrom prefers the Authorization header, falling back to the
// request body for clients that cannot set headers.
func bearerFrom(c *gin.Context, bodyToken string) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return strings.TrimSpace(bodyToken)
}

func rtcErrorStatus(err error) int {
	switch {
	case errors.Is(err, rtc.ErrAuthRequired), errors.Is(err, rtc.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func joinErrorStatus(err error) int {
	switch {
	case errors.Is(err, rooms.ErrNotAdmitted):
		return http.StatusForbidden
	case errors.Is(err, rooms.ErrUnknownMode), errors.Is(err, rooms.ErrMissingTarget):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
