package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/admission"
	"github.com/edulive/tutorlive_backend/internal/models"
)

type BookingController struct {
	DB *gorm.DB
}

type createBookingRequest struct {
	StudentID   string         `json:"student_id" binding:"required"`
	TutorName   string         `json:"tutor_name" binding:"required"`
	TutorEmail  string         `json:"tutor_email" binding:"required,email"`
	RoomID      string         `json:"room_id"`
	StartTime   FlexibleString `json:"start_time" binding:"required"` // epoch ms
	DurationMin *int           `json:"duration_min"`
}

// Create schedules a booking. Admin only; bookings are immutable after
// this, cancellation is the single mutation path.
func (bc *BookingController) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startMs, err := strconv.ParseInt(req.StartTime.String(), 10, 64)
	if err != nil || startMs <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be epoch milliseconds"})
		return
	}
	if req.DurationMin != nil && *req.DurationMin < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_min must not be negative"})
		return
	}

	var student models.User
	if err := bc.DB.Where("user_id = ? AND active = ?", req.StudentID, true).First(&student).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student not found"})
		return
	}

	booking := models.Booking{
		StudentID:   student.UserID,
		TutorName:   req.TutorName,
		TutorEmail:  req.TutorEmail,
		RoomID:      req.RoomID,
		StartTime:   startMs,
		DurationMin: req.DurationMin,
	}
	if err := bc.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "created", "id": booking.ID})
}

// List returns the caller's own bookings; admins can list any
// student's via ?student_id= or everything without it.
func (bc *BookingController) List(c *gin.Context) {
	uVal, _ := c.Get("user")
	user := uVal.(models.User)

	q := bc.DB.Model(&models.Booking{}).Order("start_time ASC")
	if user.Role == "admin" {
		if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
			q = q.Where("student_id = ?", sid)
		}
	} else {
		q = q.Where("student_id = ?", user.UserID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingJSON(b, now))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (bc *BookingController) Get(c *gin.Context) {
	booking, ok := bc.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookingJSON(booking, time.Now()))
}

// Admission reports whether the booking can be joined right now; the
// client polls this since only the wall clock flips it.
func (bc *BookingController) Admission(c *gin.Context) {
	booking, ok := bc.loadOwned(c)
	if !ok {
		return
	}
	now := time.Now()
	duration := admission.ResolveDuration(booking.DurationMin)
	opensAt, closesAt := admission.Window(time.UnixMilli(booking.StartTime), duration)
	c.JSON(http.StatusOK, gin.H{
		"admitted":  admission.IsAdmittedMillis(booking.StartTime, duration, now),
		"opens_at":  opensAt.UnixMilli(),
		"closes_at": closesAt.UnixMilli(),
		"now":       now.UnixMilli(),
	})
}

// Cancel removes a booking. Admin only; the single mutation path.
func (bc *BookingController) Cancel(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	res := bc.DB.Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
}

func (bc *BookingController) loadOwned(c *gin.Context) (models.Booking, bool) {
	id := strings.TrimSpace(c.Param("id"))
	var booking models.Booking
	if err := bc.DB.Where("id = ?", id).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return models.Booking{}, false
	}
	uVal, _ := c.Get("user")
	user := uVal.(models.User)
	if user.Role != "admin" && booking.StudentID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return models.Booking{}, false
	}
	return booking, true
}

func bookingJSON(b models.Booking, now time.Time) gin.H {
	duration := admission.ResolveDuration(b.DurationMin)
	return gin.H{
		"id":           b.ID,
		"student_id":   b.StudentID,
		"tutor_name":   b.TutorName,
		"tutor_email":  b.TutorEmail,
		"room_id":      b.RoomID,
		"start_time":   b.StartTime,
		"duration_min": duration,
		"admitted":     admission.IsAdmittedMillis(b.StartTime, duration, now),
		"created_at":   b.CreatedAt,
	}
}
