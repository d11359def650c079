package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edulive/tutorlive_backend/internal/models"
)

// PresenceHandler serves the live tutor-availability feed to any
// authenticated participant.
func PresenceHandler(hubs *Hubs) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hubs == nil || hubs.Presence == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "realtime not available"})
			return
		}
		if _, ok := c.Get("user"); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		cl := newClient(conn, hubs.Presence.unregister)
		hubs.Presence.register <- cl

		go cl.writePump()
		cl.readPump()
	}
}

// SessionsHandler serves the live session monitor feed. Admin only.
func SessionsHandler(hubs *Hubs) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hubs == nil || hubs.Monitor == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "realtime not available"})
			return
		}
		uVal, ok := c.Get("user")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user := uVal.(models.User)
		if strings.ToLower(user.Role) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		cl := newClient(conn, hubs.Monitor.unregister)
		hubs.Monitor.register <- cl

		go cl.writePump()
		cl.readPump()
	}
}
