package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDeck(t *testing.T) {
	e := newTestEnv(t)

	body := `{"deck_name":"Test","flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2","spacedRepetition":true}]}`
	rec := e.do(http.MethodPost, "/api/decks/upload/", "", body)
	requireStatus(t, http.StatusCreated, rec)

	deck := decode[dto.Deck](t, rec)
	assert.Equal(t, "Test", deck.Name)
	assert.Equal(t, 2, deck.CardCount)
	require.Len(t, deck.Flashcards, 2)
	assert.Equal(t, 0, deck.Flashcards[0].Order)
	assert.Equal(t, 1, deck.Flashcards[1].Order)
	assert.False(t, deck.Flashcards[0].SpacedRepetition)
	assert.True(t, deck.Flashcards[1].SpacedRepetition)
	assert.Equal(t, deck.ID, deck.Flashcards[0].Deck)
}

func TestUploadDeckValidation(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/decks/upload/", "", `{"deck_name":"Broken","flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2"}]}`)
	requireStatus(t, http.StatusBadRequest, rec)
	errs := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{"Each flashcard must have 'question' and 'answer' fields"}, errs["flashcards"])

	rec = e.do(http.MethodPost, "/api/decks/upload/", "", `{"flashcards":[]}`)
	requireStatus(t, http.StatusBadRequest, rec)
	errs = decode[map[string][]string](t, rec)
	assert.Equal(t, []string{msgRequired}, errs["deck_name"])

	rec = e.do(http.MethodPost, "/api/decks/upload/", "", `{"deck_name":`)
	requireStatus(t, http.StatusBadRequest, rec)

	rec = e.do(http.MethodPost, "/api/decks/upload/", "", `{"deck_name":"x","flashcards":"nope"}`)
	requireStatus(t, http.StatusBadRequest, rec)
	errs = decode[map[string][]string](t, rec)
	assert.Equal(t, []string{"Incorrect type."}, errs["flashcards"])

	// Nothing was written by the failed uploads.
	rec = e.do(http.MethodGet, "/api/decks/", "", nil)
	requireStatus(t, http.StatusOK, rec)
	assert.Zero(t, decode[dto.Page[dto.DeckListItem]](t, rec).Count)
}

func TestExportRoundTrip(t *testing.T) {
	e := newTestEnv(t)

	upload := `{"deck_name":"Spanish","description":"verbs","flashcards":[
		{"question":"ser","answer":"to be","spacedRepetition":true},
		{"question":"tener","answer":"to have"},
		{"question":"ir","answer":"to go"}]}`
	rec := e.do(http.MethodPost, "/api/decks/upload/", "", upload)
	requireStatus(t, http.StatusCreated, rec)
	original := decode[dto.Deck](t, rec)

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/decks/%d/export/", original.ID), "", nil)
	requireStatus(t, http.StatusOK, rec)
	exported := decode[dto.ExportDocument](t, rec)
	assert.Equal(t, "Spanish", exported.DeckName)
	assert.Equal(t, "verbs", exported.Description)
	require.Len(t, exported.Flashcards, 3)
	assert.Equal(t, dto.ExportCard{Question: "ser", Answer: "to be", SpacedRepetition: true}, exported.Flashcards[0])

	rec = e.do(http.MethodPost, "/api/decks/upload/", "", exported)
	requireStatus(t, http.StatusCreated, rec)
	copied := decode[dto.Deck](t, rec)
	assert.NotEqual(t, original.ID, copied.ID)
	require.Len(t, copied.Flashcards, 3)
	for i := range original.Flashcards {
		assert.Equal(t, original.Flashcards[i].Question, copied.Flashcards[i].Question)
		assert.Equal(t, original.Flashcards[i].Answer, copied.Flashcards[i].Answer)
		assert.Equal(t, original.Flashcards[i].SpacedRepetition, copied.Flashcards[i].SpacedRepetition)
		assert.Equal(t, original.Flashcards[i].Order, copied.Flashcards[i].Order)
	}
}

func TestDeckOwnership(t *testing.T) {
	e := newTestEnv(t)
	_, aliceToken := e.signUp("alice")
	_, bobToken := e.signUp("bob")

	rec := e.do(http.MethodPost, "/api/decks/", aliceToken, map[string]any{"name": "Secret"})
	requireStatus(t, http.StatusCreated, rec)
	secret := decode[dto.Deck](t, rec)
	assert.False(t, secret.IsPublic)
	path := fmt.Sprintf("/api/decks/%d/", secret.ID)

	requireStatus(t, http.StatusOK, e.do(http.MethodGet, path, aliceToken, nil))
	requireStatus(t, http.StatusNotFound, e.do(http.MethodGet, path, bobToken, nil))
	requireStatus(t, http.StatusNotFound, e.do(http.MethodGet, path, "", nil))
	requireStatus(t, http.StatusNotFound, e.do(http.MethodGet, path+"export/", bobToken, nil))

	rec = e.do(http.MethodPatch, path, aliceToken, map[string]any{"is_public": true})
	requireStatus(t, http.StatusOK, rec)
	assert.True(t, decode[dto.Deck](t, rec).IsPublic)

	rec = e.do(http.MethodPatch, path, bobToken, map[string]any{"name": "Mine now"})
	requireStatus(t, http.StatusForbidden, rec)
	assert.Equal(t, "You do not have permission to perform this action.", decode[map[string]string](t, rec)["detail"])
	requireStatus(t, http.StatusUnauthorized, e.do(http.MethodDelete, path, "", nil))

	rec = e.do(http.MethodPut, path, aliceToken, map[string]any{"description": "no name"})
	requireStatus(t, http.StatusBadRequest, rec)
	assert.Equal(t, []string{msgRequired}, decode[map[string][]string](t, rec)["name"])

	rec = e.do(http.MethodPut, path, aliceToken, map[string]any{"name": "  "})
	requireStatus(t, http.StatusBadRequest, rec)
	assert.Equal(t, []string{"This field may not be blank."}, decode[map[string][]string](t, rec)["name"])

	rec = e.do(http.MethodPut, path, aliceToken, map[string]any{"name": "Renamed", "description": "d", "is_public": true})
	requireStatus(t, http.StatusOK, rec)
	assert.Equal(t, "Renamed", decode[dto.Deck](t, rec).Name)

	requireStatus(t, http.StatusNoContent, e.do(http.MethodDelete, path, aliceToken, nil))
	requireStatus(t, http.StatusNotFound, e.do(http.MethodGet, path, aliceToken, nil))
}

func TestOwnerlessDeckIsShared(t *testing.T) {
	e := newTestEnv(t)
	_, bobToken := e.signUp("bob")

	rec := e.do(http.MethodPost, "/api/decks/", "", map[string]any{"name": "Anyone"})
	requireStatus(t, http.StatusCreated, rec)
	deck := decode[dto.Deck](t, rec)
	path := fmt.Sprintf("/api/decks/%d/", deck.ID)

	requireStatus(t, http.StatusOK, e.do(http.MethodGet, path, bobToken, nil))
	requireStatus(t, http.StatusOK, e.do(http.MethodPatch, path, bobToken, map[string]any{"description": "edited"}))
	requireStatus(t, http.StatusNoContent, e.do(http.MethodDelete, path, "", nil))
}

func TestListDecksPagination(t *testing.T) {
	e := newTestEnv(t)
	for i := 1; i <= 3; i++ {
		e.deck(fmt.Sprintf("deck %d", i), true, nil)
	}

	rec := e.do(http.MethodGet, "/api/decks/?page_size=2", "", nil)
	requireStatus(t, http.StatusOK, rec)
	page := decode[dto.Page[dto.DeckListItem]](t, rec)
	assert.EqualValues(t, 3, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "deck 3", page.Results[0].Name)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/decks/?page=2&page_size=2", *page.Next)
	assert.Nil(t, page.Previous)

	rec = e.do(http.MethodGet, "/api/decks/?page=2&page_size=2", "", nil)
	requireStatus(t, http.StatusOK, rec)
	page = decode[dto.Page[dto.DeckListItem]](t, rec)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "deck 1", page.Results[0].Name)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/decks/?page_size=2", *page.Previous)

	for _, bad := range []string{"3", "0", "abc"} {
		rec = e.do(http.MethodGet, "/api/decks/?page_size=2&page="+bad, "", nil)
		requireStatus(t, http.StatusNotFound, rec)
		assert.Equal(t, detailInvalidPage, decode[map[string]string](t, rec)["detail"])
	}
}

func TestListDecksRedirectsWithoutSlash(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/api/decks", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/api/decks/", rec.Header().Get("Location"))
}

func TestPublicAndCommunityDecks(t *testing.T) {
	e := newTestEnv(t)
	alice, aliceToken := e.signUp("alice")
	_, bobToken := e.signUp("bob")

	quiet := e.deck("quiet", true, &alice)
	popular := e.deck("popular", true, nil)
	hidden := e.deck("hidden", false, &alice)

	for _, token := range []string{aliceToken, bobToken} {
		requireStatus(t, http.StatusOK, e.do(http.MethodPost, fmt.Sprintf("/api/decks/%d/like/", popular.ID), token, nil))
	}

	rec := e.do(http.MethodGet, "/api/decks/public/", "", nil)
	requireStatus(t, http.StatusOK, rec)
	public := decode[[]dto.DeckListItem](t, rec)
	require.Len(t, public, 2)
	for _, d := range public {
		assert.NotEqual(t, hidden.ID, d.ID)
	}

	rec = e.do(http.MethodGet, "/api/decks/community/", bobToken, nil)
	requireStatus(t, http.StatusOK, rec)
	community := decode[[]dto.CommunityDeck](t, rec)
	require.Len(t, community, 2)
	assert.Equal(t, popular.ID, community[0].ID)
	assert.EqualValues(t, 2, community[0].LikesCount)
	assert.True(t, community[0].IsLiked)
	assert.Nil(t, community[0].OwnerName)
	assert.Equal(t, quiet.ID, community[1].ID)
	assert.False(t, community[1].IsLiked)
	require.NotNil(t, community[1].OwnerName)
	assert.Equal(t, "alice", *community[1].OwnerName)

	rec = e.do(http.MethodGet, "/api/decks/community/", "", nil)
	requireStatus(t, http.StatusOK, rec)
	assert.False(t, decode[[]dto.CommunityDeck](t, rec)[0].IsLiked)
}
