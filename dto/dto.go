// Package dto holds the JSON representations served by the API. Derived
// fields (card counts, accuracy, like state) are computed here when a
// response is assembled and are never stored.
package dto

import (
	"math"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

type Flashcard struct {
	ID               uint      `json:"id"`
	Deck             uint      `json:"deck"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	SpacedRepetition bool      `json:"spaced_repetition"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewFlashcard(c models.Flashcard) Flashcard {
	return Flashcard{
		ID:               c.ID,
		Deck:             c.DeckID,
		Question:         c.Question,
		Answer:           c.Answer,
		SpacedRepetition: c.SpacedRepetition,
		Order:            c.Order,
		CreatedAt:        c.CreatedAt,
	}
}

func NewFlashcards(cards []models.Flashcard) []Flashcard {
	out := make([]Flashcard, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewFlashcard(c))
	}
	return out
}

// Deck is the full deck with its cards. The cards must already be loaded.
type Deck struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	IsPublic    bool        `json:"is_public"`
	CardCount   int         `json:"card_count"`
	Flashcards  []Flashcard `json:"flashcards"`
}

func NewDeck(d models.Deck) Deck {
	return Deck{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		IsPublic:    d.IsPublic,
		CardCount:   len(d.Flashcards),
		Flashcards:  NewFlashcards(d.Flashcards),
	}
}

// DeckListItem is the lightweight projection used by listings.
type DeckListItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CardCount   int64     `json:"card_count"`
	IsPublic    bool      `json:"is_public"`
}

func NewDeckListItem(s store.DeckSummary) DeckListItem {
	return DeckListItem{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		CardCount:   s.CardCount,
		IsPublic:    s.IsPublic,
	}
}

func NewDeckList(rows []store.DeckSummary) []DeckListItem {
	out := make([]DeckListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewDeckListItem(r))
	}
	return out
}

type CommunityDeck struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CardCount     int64     `json:"card_count"`
	OwnerName     *string   `json:"owner_name"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCommunityDecks annotates each row with whether the viewer liked it.
// liked may be nil for anonymous viewers.
func NewCommunityDecks(rows []store.DeckSummary, liked map[uint]bool) []CommunityDeck {
	out := make([]CommunityDeck, 0, len(rows))
	for _, r := range rows {
		out = append(out, CommunityDeck{
			ID:            r.ID,
			Name:          r.Name,
			Description:   r.Description,
			CardCount:     r.CardCount,
			OwnerName:     r.OwnerName,
			LikesCount:    r.LikesCount,
			CommentsCount: r.CommentsCount,
			IsLiked:       liked[r.ID],
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}

type StudySession struct {
	ID            uint       `json:"id"`
	Deck          uint       `json:"deck"`
	DeckName      string     `json:"deck_name"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CorrectCount  int        `json:"correct_count"`
	TotalAttempts int        `json:"total_attempts"`
	Accuracy      int        `json:"accuracy"`
}

// NewStudySession expects s.Deck to be loaded for deck_name.
func NewStudySession(s models.StudySession) StudySession {
	return StudySession{
		ID:            s.ID,
		Deck:          s.DeckID,
		DeckName:      s.Deck.Name,
		StartedAt:     s.StartedAt,
		CompletedAt:   s.CompletedAt,
		CorrectCount:  s.CorrectCount,
		TotalAttempts: s.TotalAttempts,
		Accuracy:      Accuracy(s.CorrectCount, s.TotalAttempts),
	}
}

func NewStudySessions(sessions []models.StudySession) []StudySession {
	out := make([]StudySession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewStudySession(s))
	}
	return out
}

// Accuracy is the percentage of correct answers, rounded half to even.
// A session without attempts has accuracy 0.
func Accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(correct) / float64(total) * 100))
}

type Comment struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment expects c.User to be loaded.
func NewComment(c models.DeckComment) Comment {
	return Comment{
		ID:        c.ID,
		Username:  c.User.Username,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func NewComments(comments []models.DeckComment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewComment(c))
	}
	return out
}

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUser(u models.User) User {
	return User{ID: u.ID, Username: u.Username, Email: u.Email}
}

type Profile struct {
	User
	DecksCreated  int64 `json:"decks_created"`
	TotalCards    int64 `json:"total_cards"`
	StudySessions int64 `json:"study_sessions"`
	TotalCorrect  int64 `json:"total_correct"`
}

func NewProfile(u models.User, stats store.UserStats) Profile {
	return Profile{
		User:          NewUser(u),
		DecksCreated:  stats.DecksCreated,
		TotalCards:    stats.TotalCards,
		StudySessions: stats.StudySessions,
		TotalCorrect:  stats.TotalCorrect,
	}
}

// Page is a page-number paginated list.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
