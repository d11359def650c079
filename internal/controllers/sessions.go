package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
	"github.com/edulive/tutorlive_backend/internal/rooms"
	"github.com/edulive/tutorlive_backend/internal/rtc"
)

// Session upkeep: joins and leaves overwrite the per-room session row
// the admin monitor feeds from. Observers never touch the row.

func recordJoin(db *gorm.DB, target rooms.JoinTarget, grant rtc.JoinGrant) error {
	if db == nil || grant.Role == "admin" {
		return nil
	}
	var session models.Session
	err := db.Where("room_id = ?", target.RoomID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.Session{RoomID: target.RoomID}
	} else if err != nil {
		return err
	}

	nowMs := time.Now().UnixMilli()
	if session.StartedAt == 0 {
		session.StartedAt = nowMs
	}
	session.Active = true

	switch grant.Role {
	case "tutor":
		session.TutorUID = identityUID(grant.Identity)
		session.TutorName = grant.Name
	default:
		students := decodeStudents(session.Students)
		id := grant.Identity
		found := false
		for _, s := range students {
			if s.ID == id {
				found = true
				break
			}
		}
		if !found {
			students = append(students, rooms.SessionStudent{ID: id, Name: grant.Name})
		}
		session.Students = encodeStudents(students)
		session.StudentsCount = len(students)
	}
	return db.Save(&session).Error
}

func recordLeave(db *gorm.DB, roomID string, grant rtc.JoinGrant) error {
	if db == nil {
		return nil
	}
	var session models.Session
	if err := db.Where("room_id = ?", roomID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	switch grant.Role {
	case "admin":
		return nil
	case "tutor":
		// the room closes when its tutor leaves
		session.Active = false
	default:
		students := decodeStudents(session.Students)
		kept := students[:0]
		for _, s := range students {
			if s.ID != grant.Identity {
				kept = append(kept, s)
			}
		}
		session.Students = encodeStudents(kept)
		session.StudentsCount = len(kept)
	}
	return db.Save(&session).Error
}

func identityUID(identity string) string {
	for _, prefix := range []string{"tutor_", "student_", "observer_"} {
		if strings.HasPrefix(identity, prefix) {
			return strings.TrimPrefix(identity, prefix)
		}
	}
	return identity
}

func decodeStudents(raw string) []rooms.SessionStudent {
	if raw == "" {
		return nil
	}
	var students []rooms.SessionStudent
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		return nil
	}
	return students
}

func encodeStudents(students []rooms.SessionStudent) string {
	data, err := json.Marshal(students)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func logSessionUpkeep(op string, err error) {
	log.Printf("session upkeep (%s): %v", op, err)
}
