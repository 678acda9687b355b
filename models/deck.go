package models

import "time"

// Deck represents a named collection of flashcards
type Deck struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null;size:200"`
	Description string    `gorm:"type:text"`
	IsPublic    bool      `gorm:"default:false;index"`
	OwnerID     *uint     `gorm:"index"`
	Owner       *User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Flashcards []Flashcard   `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comments   []DeckComment `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Likes      []DeckLike    `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// VisibleTo reports whether the user may read the deck. A userID of 0 is an
// anonymous caller. Public and ownerless decks are readable by everyone.
func (d *Deck) VisibleTo(userID uint) bool {
	if d.IsPublic || d.OwnerID == nil {
		return true
	}
	return userID != 0 && *d.OwnerID == userID
}

// EditableBy reports whether the user may change the deck or its cards.
func (d *Deck) EditableBy(userID uint) bool {
	if d.OwnerID == nil {
		return true
	}
	return userID != 0 && *d.OwnerID == userID
}
