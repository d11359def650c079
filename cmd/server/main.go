package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"github.com/edulive/tutorlive_backend/internal/config"
	"github.com/edulive/tutorlive_backend/internal/database"
	"github.com/edulive/tutorlive_backend/internal/presence"
	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/routes"
	"github.com/edulive/tutorlive_backend/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	store := presence.NewStore()
	hubs := ws.NewHubs(store)
	go hubs.Presence.Run()
	go hubs.Monitor.Run()

	monitor := rooms.NewMonitor(&rooms.GormFeed{DB: db}, hubs.Monitor.Publish)
	if err := monitor.Start(); err != nil {
		log.Fatalf("session monitor failed to start: %v", err)
	}
	defer monitor.Stop()

	r := gin.Default()
	routes.Register(r, db, cfg, store, hubs)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
