package store

import (
	"context"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeckSummary is a deck row together with its live aggregate counts.
type DeckSummary struct {
	ID            uint
	Name          string
	Description   string
	IsPublic      bool
	OwnerID       *uint
	OwnerName     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CardCount     int64
	LikesCount    int64
	CommentsCount int64
}

const summaryColumns = `decks.id, decks.name, decks.description, decks.is_public, decks.owner_id,
decks.created_at, decks.updated_at, users.username AS owner_name,
(SELECT COUNT(*) FROM flashcards WHERE flashcards.deck_id = decks.id) AS card_count,
(SELECT COUNT(*) FROM deck_likes WHERE deck_likes.deck_id = decks.id) AS likes_count,
(SELECT COUNT(*) FROM deck_comments WHERE deck_comments.deck_id = decks.id) AS comments_count`

func (s *Store) summaries(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Deck{}).
		Select(summaryColumns).
		Joins("LEFT JOIN users ON users.id = decks.owner_id")
}

// visibleTo limits a decks query to rows the viewer may read. Viewer 0 is anonymous.
func visibleTo(viewer uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == 0 {
			return db.Where("(decks.is_public = ? OR decks.owner_id IS NULL)", true)
		}
		return db.Where("(decks.is_public = ? OR decks.owner_id IS NULL OR decks.owner_id = ?)", true, viewer)
	}
}

// ListDecks returns the viewer's page of decks, newest first, and the total
// number of decks visible to them.
func (s *Store) ListDecks(ctx context.Context, viewer uint, page Page) ([]DeckSummary, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Deck{}).Scopes(visibleTo(viewer)).Count(&total).Error
	if err != nil {
		return nil, 0, wrap("count decks", err)
	}

	var rows []DeckSummary
	err = s.summaries(ctx).
		Scopes(visibleTo(viewer), page.apply).
		Order("decks.created_at DESC, decks.id DESC").
		Scan(&rows).Error
	return rows, total, wrap("list decks", err)
}

func (s *Store) PublicDecks(ctx context.Context) ([]DeckSummary, error) {
	var rows []DeckSummary
	err := s.summaries(ctx).
		Where("decks.is_public = ?", true).
		Order("decks.created_at DESC, decks.id DESC").
		Scan(&rows).Error
	return rows, wrap("public decks", err)
}

// CommunityDecks ranks public decks by like count, then recency.
func (s *Store) CommunityDecks(ctx context.Context, limit int) ([]DeckSummary, error) {
	var rows []DeckSummary
	err := s.summaries(ctx).
		Where("decks.is_public = ?", true).
		Order("likes_count DESC, decks.created_at DESC, decks.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, wrap("community decks", err)
}

// LikedDeckIDs reports which of deckIDs the user has liked.
func (s *Store) LikedDeckIDs(ctx context.Context, userID uint, deckIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if userID == 0 || len(deckIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.DeckLike{}).
		Where("user_id = ? AND deck_id IN ?", userID, deckIDs).
		Pluck("deck_id", &ids).Error
	if err != nil {
		return nil, wrap("liked decks", err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (s *Store) DeckByID(ctx context.Context, id uint) (models.Deck, error) {
	var deck models.Deck
	err := s.db.WithContext(ctx).First(&deck, id).Error
	return deck, wrap("deck by id", err)
}

func (s *Store) DeckByName(ctx context.Context, name string) (models.Deck, error) {
	var deck models.Deck
	err := s.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&deck).Error
	return deck, wrap("deck by name", err)
}

// DeckWithCards loads a deck and its flashcards in display order.
func (s *Store) DeckWithCards(ctx context.Context, id uint) (models.Deck, error) {
	var deck models.Deck
	err := s.db.WithContext(ctx).
		Preload("Flashcards", func(db *gorm.DB) *gorm.DB {
			return db.Order(cardOrder)
		}).
		First(&deck, id).Error
	return deck, wrap("deck with cards", err)
}

func (s *Store) CreateDeck(ctx context.Context, deck *models.Deck) error {
	return wrap("create deck", s.db.WithContext(ctx).Omit(clause.Associations).Create(deck).Error)
}

// CreateDeckWithCards inserts the deck and all of its cards in one
// transaction. Nothing is written if any insert fails.
func (s *Store) CreateDeckWithCards(ctx context.Context, deck *models.Deck, cards []models.Flashcard) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return wrap("begin transaction", tx.Error)
	}

	if err := tx.Omit(clause.Associations).Create(deck).Error; err != nil {
		tx.Rollback()
		return wrap("create deck", err)
	}

	if len(cards) > 0 {
		for i := range cards {
			cards[i].DeckID = deck.ID
		}
		if err := tx.CreateInBatches(cards, 100).Error; err != nil {
			tx.Rollback()
			return wrap("create flashcards", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return wrap("commit transaction", err)
	}
	deck.Flashcards = cards
	return nil
}

func (s *Store) UpdateDeck(ctx context.Context, deck *models.Deck) error {
	return wrap("update deck", s.db.WithContext(ctx).Omit(clause.Associations).Save(deck).Error)
}

// DeleteDeck removes the deck and everything hanging off it.
func (s *Store) DeleteDeck(ctx context.Context, id uint) error {
	return wrap("delete deck", s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []any{&models.Flashcard{}, &models.StudySession{}, &models.DeckComment{}, &models.DeckLike{}}
		for _, child := range children {
			if err := tx.Where("deck_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Deck{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
