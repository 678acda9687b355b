package handlers

import (
	"fmt"
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// ListFlashcards lists cards of readable decks, optionally for one ?deck.
func (h *DBHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := queryID(w, r, "deck")
	if !ok {
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	_, viewerID := viewer(r)

	filter := store.FlashcardFilter{DeckID: deckID, Viewer: viewerID}
	cards, count, err := h.Store.ListFlashcards(r.Context(), filter, page.window())
	if err != nil {
		storeError(w, "ListFlashcards", err)
		return
	}
	writePage(w, r, page, count, dto.NewFlashcards(cards))
}

func (h *DBHandler) CreateFlashCard(w http.ResponseWriter, r *http.Request) {
	var req dto.FlashcardInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	present := map[string]bool{
		"deck":     req.Deck != nil,
		"question": req.Question != nil,
		"answer":   req.Answer != nil,
	}
	if !requireFields(w, present) {
		return
	}

	deck, ok := h.deckForWrite(w, r, "CreateFlashCard", *req.Deck)
	if !ok {
		return
	}
	_, viewerID := viewer(r)
	if !authorizeDeckWrite(w, &deck, viewerID) {
		return
	}

	flashcard := models.Flashcard{DeckID: deck.ID}
	applyFlashcardInput(&flashcard, req)
	if req.Order == nil {
		next, err := h.Store.NextCardOrder(r.Context(), deck.ID)
		if err != nil {
			storeError(w, "CreateFlashCard", err)
			return
		}
		flashcard.Order = next
	}

	if err := h.Store.CreateFlashcard(r.Context(), &flashcard); err != nil {
		storeError(w, "CreateFlashCard", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewFlashcard(flashcard))
}

// loadFlashcard returns the card and its deck when the caller may read them.
func (h *DBHandler) loadFlashcard(w http.ResponseWriter, r *http.Request, handler string) (models.Flashcard, models.Deck, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return models.Flashcard{}, models.Deck{}, false
	}
	flashcard, err := h.Store.FlashcardByID(r.Context(), id)
	if err != nil {
		storeError(w, handler, err)
		return models.Flashcard{}, models.Deck{}, false
	}
	deck, err := h.Store.DeckByID(r.Context(), flashcard.DeckID)
	if err != nil {
		storeError(w, handler, err)
		return models.Flashcard{}, models.Deck{}, false
	}
	_, viewerID := viewer(r)
	if !deck.VisibleTo(viewerID) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return models.Flashcard{}, models.Deck{}, false
	}
	return flashcard, deck, true
}

func (h *DBHandler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	flashcard, _, ok := h.loadFlashcard(w, r, "GetFlashcardByID")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewFlashcard(flashcard))
}

// UpdateFlashCardByID serves PUT and PATCH. Moving a card to another deck
// needs write access to both decks.
func (h *DBHandler) UpdateFlashCardByID(w http.ResponseWriter, r *http.Request) {
	flashcard, deck, ok := h.loadFlashcard(w, r, "UpdateFlashCardByID")
	if !ok {
		return
	}
	_, viewerID := viewer(r)
	if !authorizeDeckWrite(w, &deck, viewerID) {
		return
	}

	var req dto.FlashcardInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if r.Method == http.MethodPut {
		present := map[string]bool{
			"deck":     req.Deck != nil,
			"question": req.Question != nil,
			"answer":   req.Answer != nil,
		}
		if !requireFields(w, present) {
			return
		}
	}

	if req.Deck != nil && *req.Deck != flashcard.DeckID {
		target, ok := h.deckForWrite(w, r, "UpdateFlashCardByID", *req.Deck)
		if !ok {
			return
		}
		if !authorizeDeckWrite(w, &target, viewerID) {
			return
		}
		flashcard.DeckID = target.ID
	}

	applyFlashcardInput(&flashcard, req)
	if err := h.Store.UpdateFlashcard(r.Context(), &flashcard); err != nil {
		storeError(w, "UpdateFlashCardByID", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewFlashcard(flashcard))
}

func applyFlashcardInput(flashcard *models.Flashcard, req dto.FlashcardInput) {
	if req.Question != nil {
		flashcard.Question = *req.Question
	}
	if req.Answer != nil {
		flashcard.Answer = *req.Answer
	}
	if req.SpacedRepetition != nil {
		flashcard.SpacedRepetition = *req.SpacedRepetition
	}
	if req.Order != nil {
		flashcard.Order = *req.Order
	}
}

func (h *DBHandler) DeleteFlashCardByID(w http.ResponseWriter, r *http.Request) {
	flashcard, deck, ok := h.loadFlashcard(w, r, "DeleteFlashCardByID")
	if !ok {
		return
	}
	_, viewerID := viewer(r)
	if !authorizeDeckWrite(w, &deck, viewerID) {
		return
	}

	if err := h.Store.DeleteFlashcard(r.Context(), flashcard.ID); err != nil {
		storeError(w, "DeleteFlashCardByID", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
