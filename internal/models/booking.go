package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a scheduled 1-on-1 session. Rows are immutable once
// created; the only mutation path is admin cancellation (delete).
type Booking struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	StudentID   string `gorm:"index"` // UserID of the student
	TutorName   string
	TutorEmail  string
	RoomID      string
	StartTime   int64 // epoch milliseconds; 0 means unscheduled
	DurationMin *int  // nil means unspecified, resolved to the default
	CreatedAt   time.Time
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
