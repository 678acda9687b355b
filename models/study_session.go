package models

import (
	"time"
)

// StudySession records one study pass over a deck
type StudySession struct {
	ID            uint       `gorm:"primaryKey"`
	DeckID        uint       `gorm:"not null;index"`
	Deck          Deck       `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID        *uint      `gorm:"index"`
	StartedAt     time.Time  `gorm:"autoCreateTime"`
	CompletedAt   *time.Time `gorm:"default:null"`
	CorrectCount  int        `gorm:"not null;default:0"`
	TotalAttempts int        `gorm:"not null;default:0"`
}

// AccessibleBy reports whether the user may read or change the session.
// Sessions started anonymously stay anonymous.
func (s *StudySession) AccessibleBy(userID uint) bool {
	if s.UserID == nil {
		return true
	}
	return userID != 0 && *s.UserID == userID
}
