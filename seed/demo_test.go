package seed

import (
	"context"
	"testing"

	"github.com/andrewpaige1/flashdeck-api/config"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoIsIdempotent(t *testing.T) {
	db, err := config.Connect(&config.Config{DBDriver: "sqlite", DBURL: "file::memory:?_foreign_keys=on", DBLogLevel: "silent"})
	require.NoError(t, err)
	s := store.New(db)
	ctx := context.Background()

	results, err := Demo(ctx, s)
	require.NoError(t, err)
	require.Len(t, results, 3)
	want := map[string]int{"Biology 101": 4, "Chemistry Basics": 3, "World History": 2}
	for _, res := range results {
		assert.True(t, res.Created, res.Deck)
		assert.Equal(t, want[res.Deck], res.Cards, res.Deck)
	}

	results, err = Demo(ctx, s)
	require.NoError(t, err)
	for _, res := range results {
		assert.False(t, res.Created, res.Deck)
	}

	public, err := s.PublicDecks(ctx)
	require.NoError(t, err)
	require.Len(t, public, 3)
	for _, d := range public {
		assert.EqualValues(t, want[d.Name], d.CardCount, d.Name)
		assert.Nil(t, d.OwnerID)
	}

	bio, err := s.DeckByName(ctx, "Biology 101")
	require.NoError(t, err)
	deck, err := s.DeckWithCards(ctx, bio.ID)
	require.NoError(t, err)
	assert.Equal(t, "What is the powerhouse of the cell?", deck.Flashcards[0].Question)
	assert.True(t, deck.Flashcards[0].SpacedRepetition)
	assert.False(t, deck.Flashcards[2].SpacedRepetition)
}
