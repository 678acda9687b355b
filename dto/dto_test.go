package dto

import (
	"encoding/json"
	"testing"

	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 12}, // 12.5 rounds to even
		{3, 8, 38}, // 37.5 rounds to even
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Accuracy(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestNewDeckCountsLoadedCards(t *testing.T) {
	deck := models.Deck{
		ID:   4,
		Name: "Test",
		Flashcards: []models.Flashcard{
			{ID: 1, DeckID: 4, Question: "Q1", Answer: "A1", SpacedRepetition: true},
			{ID: 2, DeckID: 4, Question: "Q2", Answer: "A2", Order: 1},
		},
	}
	got := NewDeck(deck)
	assert.Equal(t, 2, got.CardCount)
	require.Len(t, got.Flashcards, 2)
	assert.Equal(t, uint(4), got.Flashcards[0].Deck)
	assert.True(t, got.Flashcards[0].SpacedRepetition)
	assert.Equal(t, 1, got.Flashcards[1].Order)

	empty := NewDeck(models.Deck{Name: "Empty"})
	assert.Zero(t, empty.CardCount)
	assert.NotNil(t, empty.Flashcards)
}

func TestNewStudySession(t *testing.T) {
	session := models.StudySession{
		ID:            9,
		DeckID:        2,
		Deck:          models.Deck{ID: 2, Name: "Biology 101"},
		CorrectCount:  2,
		TotalAttempts: 3,
	}
	got := NewStudySession(session)
	assert.Equal(t, "Biology 101", got.DeckName)
	assert.Equal(t, uint(2), got.Deck)
	assert.Equal(t, 67, got.Accuracy)
	assert.Nil(t, got.CompletedAt)
}

func TestNewCommunityDecksMarksLiked(t *testing.T) {
	owner := "alice"
	rows := []store.DeckSummary{
		{ID: 1, Name: "one", OwnerName: &owner, LikesCount: 3},
		{ID: 2, Name: "two"},
	}

	got := NewCommunityDecks(rows, map[uint]bool{2: true})
	require.Len(t, got, 2)
	assert.False(t, got[0].IsLiked)
	assert.True(t, got[1].IsLiked)
	assert.Equal(t, "alice", *got[0].OwnerName)
	assert.Nil(t, got[1].OwnerName)

	anonymous := NewCommunityDecks(rows, nil)
	assert.False(t, anonymous[1].IsLiked)
}

func TestUploadCardsFollowArrayOrder(t *testing.T) {
	var req UploadRequest
	body := `{
		"deck_name": "Test",
		"flashcards": [
			{"question": "Q1", "answer": "A1", "spacedRepetition": true},
			{"question": "Q2", "answer": "A2"}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	cards := req.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, 0, cards[0].Order)
	assert.Equal(t, 1, cards[1].Order)
	assert.True(t, cards[0].SpacedRepetition)
	assert.False(t, cards[1].SpacedRepetition)
	assert.Equal(t, "Q2", cards[1].Question)
}

func TestExportMatchesUploadShape(t *testing.T) {
	upload := UploadRequest{DeckName: "Round trip", Description: "d"}
	for _, q := range []string{"Q1", "Q2"} {
		question, answer := q, "answer to "+q
		upload.Flashcards = append(upload.Flashcards, UploadCard{Question: &question, Answer: &answer})
	}

	doc := NewExport(models.Deck{Name: upload.DeckName, Description: upload.Description, Flashcards: upload.Cards()})
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var back UploadRequest
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, upload.DeckName, back.DeckName)
	assert.Equal(t, upload.Description, back.Description)
	assert.Equal(t, upload.Cards(), back.Cards())
	assert.Contains(t, string(raw), `"spacedRepetition":false`)
}
