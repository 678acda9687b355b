package models

import "time"

// User represents an account that owns decks and study sessions
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null;size:150"`
	Email        string `gorm:"size:254"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}
