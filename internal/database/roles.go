package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
)

// RoleStore looks up the role assigned to a user at account creation.
// It backs the capability issuer's stored-role override.
type RoleStore struct {
	DB *gorm.DB
}

// RoleOf returns the stored role for uid, or "" when no account exists.
func (s *RoleStore) RoleOf(uid string) (string, error) {
	var user models.User
	err := s.DB.Select("role").Where("user_id = ? AND active = ?", uid, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
