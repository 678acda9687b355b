package store

import (
	"context"

	"github.com/andrewpaige1/flashdeck-api/models"
	"gorm.io/gorm"
)

const cardOrder = "sort_order ASC, created_at ASC, id ASC"

type FlashcardFilter struct {
	DeckID uint // 0 matches every deck
	Viewer uint
}

// ListFlashcards returns cards of decks the viewer may read, grouped by deck
// and in display order within each deck.
func (s *Store) ListFlashcards(ctx context.Context, filter FlashcardFilter, page Page) ([]models.Flashcard, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).
			Model(&models.Flashcard{}).
			Joins("JOIN decks ON decks.id = flashcards.deck_id").
			Scopes(visibleTo(filter.Viewer))
		if filter.DeckID != 0 {
			q = q.Where("flashcards.deck_id = ?", filter.DeckID)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, wrap("count flashcards", err)
	}

	var cards []models.Flashcard
	err := query().
		Select("flashcards.*").
		Scopes(page.apply).
		Order("flashcards.deck_id ASC, flashcards.sort_order ASC, flashcards.created_at ASC, flashcards.id ASC").
		Find(&cards).Error
	return cards, total, wrap("list flashcards", err)
}

func (s *Store) FlashcardByID(ctx context.Context, id uint) (models.Flashcard, error) {
	var card models.Flashcard
	err := s.db.WithContext(ctx).First(&card, id).Error
	return card, wrap("flashcard by id", err)
}

// NextCardOrder returns the position after the last card of the deck.
func (s *Store) NextCardOrder(ctx context.Context, deckID uint) (int, error) {
	var next int
	err := s.db.WithContext(ctx).
		Model(&models.Flashcard{}).
		Where("deck_id = ?", deckID).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error
	return next, wrap("next card order", err)
}

func (s *Store) CreateFlashcard(ctx context.Context, card *models.Flashcard) error {
	return wrap("create flashcard", s.db.WithContext(ctx).Create(card).Error)
}

func (s *Store) UpdateFlashcard(ctx context.Context, card *models.Flashcard) error {
	return wrap("update flashcard", s.db.WithContext(ctx).Save(card).Error)
}

func (s *Store) DeleteFlashcard(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Flashcard{}, id)
	if res.Error != nil {
		return wrap("delete flashcard", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete flashcard", gorm.ErrRecordNotFound)
	}
	return nil
}
