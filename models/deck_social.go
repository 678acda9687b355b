package models

import "time"

// DeckComment is a user's comment on a deck
type DeckComment struct {
	ID        uint      `gorm:"primaryKey"`
	DeckID    uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// DeckLike marks a deck as liked by a user. At most one per (deck, user).
type DeckLike struct {
	ID        uint `gorm:"primaryKey"`
	DeckID    uint `gorm:"not null;uniqueIndex:idx_deck_likes_deck_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_deck_likes_deck_user"`
	User      User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
