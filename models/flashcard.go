package models

import (
	"time"
)

// Flashcard represents an individual question and answer pair
type Flashcard struct {
	ID       uint   `gorm:"primaryKey"`
	DeckID   uint   `gorm:"not null;index"`
	Question string `gorm:"type:text;not null"`
	Answer   string `gorm:"type:text;not null"`

	// Stored and round-tripped only; nothing schedules reviews from it.
	SpacedRepetition bool `gorm:"default:false"`

	// "order" is reserved in SQL.
	Order int `gorm:"column:sort_order;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
