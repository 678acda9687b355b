package dto

import (
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
)

// UploadRequest is the bulk import document. Cards use camelCase
// "spacedRepetition", unlike the flashcard resource.
type UploadRequest struct {
	DeckName    string       `json:"deck_name" validate:"required,max=200"`
	Description string       `json:"description"`
	IsPublic    bool         `json:"is_public"`
	Flashcards  []UploadCard `json:"flashcards" validate:"required,dive"`
}

type UploadCard struct {
	Question         *string `json:"question" validate:"required"`
	Answer           *string `json:"answer" validate:"required"`
	SpacedRepetition bool    `json:"spacedRepetition"`
}

// Cards converts the upload into flashcards ordered by their array position.
func (u UploadRequest) Cards() []models.Flashcard {
	cards := make([]models.Flashcard, 0, len(u.Flashcards))
	for i, c := range u.Flashcards {
		cards = append(cards, models.Flashcard{
			Question:         *c.Question,
			Answer:           *c.Answer,
			SpacedRepetition: c.SpacedRepetition,
			Order:            i,
		})
	}
	return cards
}

// ExportDocument is the counterpart of UploadRequest.
type ExportDocument struct {
	DeckName    string       `json:"deck_name"`
	Description string       `json:"description"`
	Flashcards  []ExportCard `json:"flashcards"`
}

type ExportCard struct {
	Question         string `json:"question"`
	Answer           string `json:"answer"`
	SpacedRepetition bool   `json:"spacedRepetition"`
}

// NewExport expects the deck's cards to be loaded in display order.
func NewExport(d models.Deck) ExportDocument {
	doc := ExportDocument{
		DeckName:    d.Name,
		Description: d.Description,
		Flashcards:  make([]ExportCard, 0, len(d.Flashcards)),
	}
	for _, c := range d.Flashcards {
		doc.Flashcards = append(doc.Flashcards, ExportCard{
			Question:         c.Question,
			Answer:           c.Answer,
			SpacedRepetition: c.SpacedRepetition,
		})
	}
	return doc
}

// DeckInput is the body of deck create and update. Absent fields are nil.
type DeckInput struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type FlashcardInput struct {
	Deck             *uint   `json:"deck"`
	Question         *string `json:"question" validate:"omitempty,notblank"`
	Answer           *string `json:"answer" validate:"omitempty,notblank"`
	SpacedRepetition *bool   `json:"spaced_repetition"`
	Order            *int    `json:"order"`
}

type SessionInput struct {
	Deck          *uint      `json:"deck"`
	CompletedAt   *time.Time `json:"completed_at"`
	CorrectCount  *int       `json:"correct_count" validate:"omitempty,min=0"`
	TotalAttempts *int       `json:"total_attempts" validate:"omitempty,min=0"`
}

type AnswerInput struct {
	Correct bool `json:"correct"`
}

type CommentInput struct {
	Text *string `json:"text" validate:"required,notblank"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Password2 string `json:"password2" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}
