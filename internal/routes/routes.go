package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/config"
	"github.com/edulive/tutorlive_backend/internal/controllers"
	"github.com/edulive/tutorlive_backend/internal/database"
	"github.com/edulive/tutorlive_backend/internal/middleware"
	"github.com/edulive/tutorlive_backend/internal/presence"
	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/rtc"
	"github.com/edulive/tutorlive_backend/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, store *presence.Store, hubs *ws.Hubs) {
	accessTTL := minutes(cfg.AccessTokenTTLMinutes, 15*time.Minute)
	refreshTTL := days(cfg.RefreshTokenTTLDays, 30*24*time.Hour)
	mediaTTL := minutes(cfg.MediaTokenTTLMinutes, 2*time.Hour)

	authCtrl := &controllers.AuthController{
		DB:            db,
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshJWTSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
	adminCtrl := &controllers.AdminController{DB: db}
	roomCtrl := &controllers.RoomController{DB: db}
	bookingCtrl := &controllers.BookingController{DB: db}
	presenceCtrl := &controllers.PresenceController{Store: store, Hubs: hubs}
	cfgCtrl := &controllers.ConfigController{Cfg: cfg}

	issuer := &rtc.Issuer{
		Verifier: &middleware.Verifier{Secret: cfg.JWTSecret},
		Roles:    &database.RoleStore{DB: db},
		Minter: &rtc.Minter{
			APIKey:    cfg.MediaAPIKey,
			APISecret: cfg.MediaAPISecret,
			ServerURL: cfg.MediaServerURL,
			TTL:       mediaTTL,
		},
		RequireAuth: cfg.HardenedRTC(),
	}
	rtcCtrl := &controllers.RTCController{
		Issuer: issuer,
		Router: &rooms.Router{Bookings: &database.Bookings{DB: db}},
		DB:     db,
	}

	// Public
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh", authCtrl.Refresh)
	}
	r.GET("/api/v1/config/public", cfgCtrl.Get)

	// Capability issuance handles its own identity resolution; hardened
	// vs relaxed mode lives in the issuer, not in routing.
	r.POST("/api/v1/rtc/token", rtcCtrl.Token)
	r.POST("/api/v1/rooms/join", rtcCtrl.Join)
	r.POST("/api/v1/rooms/leave", rtcCtrl.Leave)

	// Protected
	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		JWTExpiresIn: accessTTL,
	})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)

		// Admin-only
		admin := api.Group("/admin", middleware.RequireRoles("admin"))
		{
			admin.GET("/users", adminCtrl.ListUsers)
			admin.POST("/users", authCtrl.Register) // admin-only registration (role fixed here)
			admin.GET("/users/:user_id", adminCtrl.GetUser)
			admin.PUT("/users/:user_id", adminCtrl.UpdateUser)
			admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)

			admin.GET("/rooms", roomCtrl.ListRooms)
			admin.POST("/rooms", roomCtrl.CreateRoom)
			admin.GET("/rooms/:id", roomCtrl.GetRoom)
			admin.PUT("/rooms/:id", roomCtrl.UpdateRoom)
			admin.DELETE("/rooms/:id", roomCtrl.DeleteRoom)

			admin.POST("/bookings", bookingCtrl.Create)
			admin.DELETE("/bookings/:id", bookingCtrl.Cancel)
		}

		// Bookings (students see their own, admin sees all)
		api.GET("/bookings", bookingCtrl.List)
		api.GET("/bookings/:id", bookingCtrl.Get)
		api.GET("/bookings/:id/admission", bookingCtrl.Admission)

		// Presence
		api.POST("/presence/heartbeat", middleware.RequireRoles("tutor"), presenceCtrl.Heartbeat)
		api.GET("/presence/tutors", presenceCtrl.Tutors)

		// Live feeds
		api.GET("/ws/presence", ws.PresenceHandler(hubs))
		api.GET("/ws/sessions", ws.SessionsHandler(hubs))
	}
}

func minutes(val string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(val + "m")
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func days(val string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(val + "h")
	if err != nil || d <= 0 {
		return fallback
	}
	return d * 24
}
