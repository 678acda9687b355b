package store

import (
	"context"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionFilter struct {
	UserID uint // 0 selects anonymous sessions
	DeckID uint
}

func (s *Store) ListSessions(ctx context.Context, filter SessionFilter, page Page) ([]models.StudySession, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.StudySession{})
		if filter.UserID == 0 {
			q = q.Where("user_id IS NULL")
		} else {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.DeckID != 0 {
			q = q.Where("deck_id = ?", filter.DeckID)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, wrap("count sessions", err)
	}

	var sessions []models.StudySession
	err := query().
		Preload("Deck").
		Scopes(page.apply).
		Order("started_at DESC, id DESC").
		Find(&sessions).Error
	return sessions, total, wrap("list sessions", err)
}

func (s *Store) SessionByID(ctx context.Context, id uint) (models.StudySession, error) {
	var session models.StudySession
	err := s.db.WithContext(ctx).Preload("Deck").First(&session, id).Error
	return session, wrap("session by id", err)
}

func (s *Store) CreateSession(ctx context.Context, session *models.StudySession) error {
	return wrap("create session", s.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error)
}

func (s *Store) UpdateSession(ctx context.Context, session *models.StudySession) error {
	return wrap("update session", s.db.WithContext(ctx).Omit(clause.Associations).Save(session).Error)
}

func (s *Store) DeleteSession(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.StudySession{}, id)
	if res.Error != nil {
		return wrap("delete session", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete session", gorm.ErrRecordNotFound)
	}
	return nil
}

// RecordAnswer counts one attempt, and one correct answer when correct is
// set. The increment happens in SQL so concurrent answers are not lost.
func (s *Store) RecordAnswer(ctx context.Context, id uint, correct bool) (models.StudySession, error) {
	updates := map[string]any{"total_attempts": gorm.Expr("total_attempts + ?", 1)}
	if correct {
		updates["correct_count"] = gorm.Expr("correct_count + ?", 1)
	}
	res := s.db.WithContext(ctx).Model(&models.StudySession{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return models.StudySession{}, wrap("record answer", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.StudySession{}, wrap("record answer", gorm.ErrRecordNotFound)
	}
	return s.SessionByID(ctx, id)
}

func (s *Store) CompleteSession(ctx context.Context, id uint, at time.Time) (models.StudySession, error) {
	res := s.db.WithContext(ctx).Model(&models.StudySession{}).Where("id = ?", id).Update("completed_at", at)
	if res.Error != nil {
		return models.StudySession{}, wrap("complete session", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.StudySession{}, wrap("complete session", gorm.ErrRecordNotFound)
	}
	return s.SessionByID(ctx, id)
}
