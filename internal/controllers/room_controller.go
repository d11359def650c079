package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
)

type RoomController struct {
	DB *gorm.DB
}

type createRoomRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

type updateRoomRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (rc *RoomController) ListRooms(c *gin.Context) {
	activeStr := strings.TrimSpace(strings.ToLower(c.Query("active")))
	q := rc.DB.Model(&models.Room{}).Order("created_at DESC")
	switch activeStr {
	case "":
	case "true", "1":
		q = q.Where("active = ?", true)
	case "false", "0":
		q = q.Where("active = ?", false)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active value"})
		return
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, gin.H{
			"id":         r.ID,
			"name":       r.Name,
			"active":     r.Active,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	room := models.Room{Name: req.Name, Active: active}
	if err := rc.DB.Create(&room).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "room name already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "created", "id": room.ID})
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var room models.Room
	if err := rc.DB.Where("id = ?", id).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var room models.Room
	if err := rc.DB.Where("id = ?", id).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := rc.DB.Save(&room).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "room name already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := rc.DB.Where("id = ?", id).Delete(&models.Room{}).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
