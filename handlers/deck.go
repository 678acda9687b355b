package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

const communityLimit = 20

func (h *DBHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	_, viewerID := viewer(r)

	rows, count, err := h.Store.ListDecks(r.Context(), viewerID, page.window())
	if err != nil {
		storeError(w, "ListDecks", err)
		return
	}
	writePage(w, r, page, count, dto.NewDeckList(rows))
}

func (h *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req dto.DeckInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if !requireFields(w, map[string]bool{"name": req.Name != nil}) {
		return
	}

	user, _ := viewer(r)
	deck := models.Deck{Name: *req.Name}
	applyDeckInput(&deck, req)
	if user != nil {
		deck.OwnerID = &user.ID
	}

	if err := h.Store.CreateDeck(r.Context(), &deck); err != nil {
		storeError(w, "CreateDeck", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewDeck(deck))
}

// loadVisibleDeck fetches the deck with its cards and hides decks the caller
// may not read behind a 404.
func (h *DBHandler) loadVisibleDeck(w http.ResponseWriter, r *http.Request, handler string) (models.Deck, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return models.Deck{}, false
	}
	deck, err := h.Store.DeckWithCards(r.Context(), id)
	if err != nil {
		storeError(w, handler, err)
		return models.Deck{}, false
	}
	_, viewerID := viewer(r)
	if !deck.VisibleTo(viewerID) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return models.Deck{}, false
	}
	return deck, true
}

func (h *DBHandler) GetDeckByID(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "GetDeckByID")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDeck(deck))
}

// UpdateDeckByID serves PUT (all writable fields required) and PATCH.
func (h *DBHandler) UpdateDeckByID(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "UpdateDeckByID")
	if !ok {
		return
	}
	_, viewerID := viewer(r)
	if !authorizeDeckWrite(w, &deck, viewerID) {
		return
	}

	var req dto.DeckInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if r.Method == http.MethodPut && !requireFields(w, map[string]bool{"name": req.Name != nil}) {
		return
	}

	applyDeckInput(&deck, req)
	if err := h.Store.UpdateDeck(r.Context(), &deck); err != nil {
		storeError(w, "UpdateDeckByID", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDeck(deck))
}

func applyDeckInput(deck *models.Deck, req dto.DeckInput) {
	if req.Name != nil {
		deck.Name = *req.Name
	}
	if req.Description != nil {
		deck.Description = *req.Description
	}
	if req.IsPublic != nil {
		deck.IsPublic = *req.IsPublic
	}
}

func (h *DBHandler) DeleteDeckByID(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "DeleteDeckByID")
	if !ok {
		return
	}
	_, viewerID := viewer(r)
	if !authorizeDeckWrite(w, &deck, viewerID) {
		return
	}

	if err := h.Store.DeleteDeck(r.Context(), deck.ID); err != nil {
		storeError(w, "DeleteDeckByID", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadDeck creates a deck and all of its cards from one import document.
// Cards keep their array position as their order.
func (h *DBHandler) UploadDeck(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	nested := map[string]string{"flashcards": "Each flashcard must have 'question' and 'answer' fields"}
	if !validateBody(w, &req, nested) {
		return
	}

	user, _ := viewer(r)
	deck := models.Deck{
		Name:        req.DeckName,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if user != nil {
		deck.OwnerID = &user.ID
	}

	if err := h.Store.CreateDeckWithCards(r.Context(), &deck, req.Cards()); err != nil {
		storeError(w, "UploadDeck", err)
		return
	}

	created, err := h.Store.DeckWithCards(r.Context(), deck.ID)
	if err != nil {
		storeError(w, "UploadDeck", err)
		return
	}
	log.Printf("UploadDeck: created deck %d with %d cards", created.ID, len(created.Flashcards))
	writeJSON(w, http.StatusCreated, dto.NewDeck(created))
}

func (h *DBHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "ExportDeck")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewExport(deck))
}

func (h *DBHandler) ListPublicDecks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.PublicDecks(r.Context())
	if err != nil {
		storeError(w, "ListPublicDecks", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDeckList(rows))
}

func (h *DBHandler) ListCommunityDecks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.CommunityDecks(r.Context(), communityLimit)
	if err != nil {
		storeError(w, "ListCommunityDecks", err)
		return
	}

	var liked map[uint]bool
	if _, viewerID := viewer(r); viewerID != 0 {
		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		liked, err = h.Store.LikedDeckIDs(r.Context(), viewerID, ids)
		if err != nil {
			storeError(w, "ListCommunityDecks", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, dto.NewCommunityDecks(rows, liked))
}

// deckForWrite loads the deck a flashcard or session refers to. A missing or
// unreadable deck is a field error on "deck".
func (h *DBHandler) deckForWrite(w http.ResponseWriter, r *http.Request, handler string, id uint) (models.Deck, bool) {
	deck, err := h.Store.DeckByID(r.Context(), id)
	_, viewerID := viewer(r)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !deck.VisibleTo(viewerID)) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"deck": {invalidPK(id)}})
		return models.Deck{}, false
	}
	if err != nil {
		storeError(w, handler, err)
		return models.Deck{}, false
	}
	return deck, true
}
