package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is the live-room projection the admin monitor feeds from.
// One row per room; overwritten as participants join and leave.
type Session struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	RoomID        string `gorm:"uniqueIndex"`
	Active        bool   `gorm:"index:idx_sessions_active_updated,priority:1"`
	TutorUID      string
	TutorName     string
	TutorEmail    string
	Students      string // JSON array of {id, name}
	StudentsCount int
	StartedAt     int64 // epoch milliseconds
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index:idx_sessions_active_updated,priority:2,sort:desc"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
