package database

import (
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
)

// Bookings adapts the relational store to the join router's read-only
// booking lookup.
type Bookings struct {
	DB *gorm.DB
}

func (b *Bookings) BookingByID(id string) (models.Booking, error) {
	var booking models.Booking
	err := b.DB.Where("id = ?", id).First(&booking).Error
	return booking, err
}
