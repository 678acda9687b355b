package store

import (
	"context"

	"github.com/andrewpaige1/flashdeck-api/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return wrap("create user", s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) UserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, wrap("user by id", err)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, wrap("user by username", err)
}

// UserStats aggregates a user's activity for the profile endpoint.
type UserStats struct {
	DecksCreated  int64
	TotalCards    int64
	StudySessions int64
	TotalCorrect  int64
}

func (s *Store) UserStats(ctx context.Context, userID uint) (UserStats, error) {
	var stats UserStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Deck{}).Where("owner_id = ?", userID).Count(&stats.DecksCreated).Error; err != nil {
		return stats, wrap("count decks", err)
	}
	err := db.Model(&models.Flashcard{}).
		Joins("JOIN decks ON decks.id = flashcards.deck_id").
		Where("decks.owner_id = ?", userID).
		Count(&stats.TotalCards).Error
	if err != nil {
		return stats, wrap("count cards", err)
	}
	if err := db.Model(&models.StudySession{}).Where("user_id = ?", userID).Count(&stats.StudySessions).Error; err != nil {
		return stats, wrap("count sessions", err)
	}
	err = db.Model(&models.StudySession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(correct_count), 0)").
		Scan(&stats.TotalCorrect).Error
	return stats, wrap("sum correct", err)
}
