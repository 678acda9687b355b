package store

import (
	"context"

	"github.com/andrewpaige1/flashdeck-api/models"
	"gorm.io/gorm/clause"
)

// LikeDeck records the like if it does not exist yet and returns the deck's
// like count. The unique (deck_id, user_id) index makes repeats a no-op.
func (s *Store) LikeDeck(ctx context.Context, deckID, userID uint) (int64, error) {
	like := models.DeckLike{DeckID: deckID, UserID: userID}
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deck_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if err != nil {
		return 0, wrap("like deck", err)
	}
	return s.CountLikes(ctx, deckID)
}

func (s *Store) UnlikeDeck(ctx context.Context, deckID, userID uint) (int64, error) {
	err := s.db.WithContext(ctx).
		Where("deck_id = ? AND user_id = ?", deckID, userID).
		Delete(&models.DeckLike{}).Error
	if err != nil {
		return 0, wrap("unlike deck", err)
	}
	return s.CountLikes(ctx, deckID)
}

func (s *Store) CountLikes(ctx context.Context, deckID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.DeckLike{}).Where("deck_id = ?", deckID).Count(&n).Error
	return n, wrap("count likes", err)
}

// ListComments returns up to limit comments, newest first, with authors loaded.
func (s *Store) ListComments(ctx context.Context, deckID uint, limit int) ([]models.DeckComment, error) {
	var comments []models.DeckComment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("deck_id = ?", deckID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, wrap("list comments", err)
}

func (s *Store) CreateComment(ctx context.Context, comment *models.DeckComment) error {
	return wrap("create comment", s.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}
