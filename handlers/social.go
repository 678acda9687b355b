package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/models"
)

const commentLimit = 50

type likeResponse struct {
	Likes   int64  `json:"likes"`
	Message string `json:"message"`
}

// LikeDeck is idempotent: liking twice leaves one like.
func (h *DBHandler) LikeDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "LikeDeck")
	if !ok {
		return
	}
	_, viewerID := viewer(r)

	likes, err := h.Store.LikeDeck(r.Context(), deck.ID, viewerID)
	if err != nil {
		storeError(w, "LikeDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Likes: likes, Message: "Deck liked successfully"})
}

// UnlikeDeck removes the caller's like; without one it is a no-op.
func (h *DBHandler) UnlikeDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "UnlikeDeck")
	if !ok {
		return
	}
	_, viewerID := viewer(r)

	likes, err := h.Store.UnlikeDeck(r.Context(), deck.ID, viewerID)
	if err != nil {
		storeError(w, "UnlikeDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Likes: likes, Message: "Like removed"})
}

func (h *DBHandler) GetDeckComments(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "GetDeckComments")
	if !ok {
		return
	}

	comments, err := h.Store.ListComments(r.Context(), deck.ID, commentLimit)
	if err != nil {
		storeError(w, "GetDeckComments", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewComments(comments))
}

func (h *DBHandler) CreateDeckComment(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadVisibleDeck(w, r, "CreateDeckComment")
	if !ok {
		return
	}

	user, _ := viewer(r)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	var req dto.CommentInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}

	comment := models.DeckComment{DeckID: deck.ID, UserID: user.ID, Text: *req.Text}
	if err := h.Store.CreateComment(r.Context(), &comment); err != nil {
		storeError(w, "CreateDeckComment", err)
		return
	}
	comment.User = *user
	writeJSON(w, http.StatusCreated, dto.NewComment(comment))
}
