package handlers

import (
	"net/http"
	"time"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

// ListSessions lists the caller's sessions. Anonymous callers see sessions
// that were started anonymously.
func (h *DBHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	deckID, ok := queryID(w, r, "deck")
	if !ok {
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	_, viewerID := viewer(r)

	filter := store.SessionFilter{UserID: viewerID, DeckID: deckID}
	sessions, count, err := h.Store.ListSessions(r.Context(), filter, page.window())
	if err != nil {
		storeError(w, "ListSessions", err)
		return
	}
	writePage(w, r, page, count, dto.NewStudySessions(sessions))
}

func (h *DBHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if !requireFields(w, map[string]bool{"deck": req.Deck != nil}) {
		return
	}

	deck, ok := h.deckForWrite(w, r, "CreateSession", *req.Deck)
	if !ok {
		return
	}

	session := models.StudySession{DeckID: deck.ID}
	applySessionInput(&session, req)
	if user, _ := viewer(r); user != nil {
		session.UserID = &user.ID
	}

	if err := h.Store.CreateSession(r.Context(), &session); err != nil {
		storeError(w, "CreateSession", err)
		return
	}
	session.Deck = deck
	writeJSON(w, http.StatusCreated, dto.NewStudySession(session))
}

// loadSession hides sessions that belong to someone else behind a 404.
func (h *DBHandler) loadSession(w http.ResponseWriter, r *http.Request, handler string) (models.StudySession, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return models.StudySession{}, false
	}
	session, err := h.Store.SessionByID(r.Context(), id)
	if err != nil {
		storeError(w, handler, err)
		return models.StudySession{}, false
	}
	_, viewerID := viewer(r)
	if !session.AccessibleBy(viewerID) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return models.StudySession{}, false
	}
	return session, true
}

func (h *DBHandler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r, "GetSessionByID")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewStudySession(session))
}

func (h *DBHandler) UpdateSessionByID(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r, "UpdateSessionByID")
	if !ok {
		return
	}

	var req dto.SessionInput
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if r.Method == http.MethodPut && !requireFields(w, map[string]bool{"deck": req.Deck != nil}) {
		return
	}

	if req.Deck != nil && *req.Deck != session.DeckID {
		deck, ok := h.deckForWrite(w, r, "UpdateSessionByID", *req.Deck)
		if !ok {
			return
		}
		session.DeckID = deck.ID
		session.Deck = deck
	}

	applySessionInput(&session, req)
	if err := h.Store.UpdateSession(r.Context(), &session); err != nil {
		storeError(w, "UpdateSessionByID", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewStudySession(session))
}

func applySessionInput(session *models.StudySession, req dto.SessionInput) {
	if req.CompletedAt != nil {
		session.CompletedAt = req.CompletedAt
	}
	if req.CorrectCount != nil {
		session.CorrectCount = *req.CorrectCount
	}
	if req.TotalAttempts != nil {
		session.TotalAttempts = *req.TotalAttempts
	}
}

func (h *DBHandler) DeleteSessionByID(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r, "DeleteSessionByID")
	if !ok {
		return
	}
	if err := h.Store.DeleteSession(r.Context(), session.ID); err != nil {
		storeError(w, "DeleteSessionByID", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordAnswer counts one attempt. Body: {"correct": true|false}; a missing
// flag counts as incorrect.
func (h *DBHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r, "RecordAnswer")
	if !ok {
		return
	}

	var req dto.AnswerInput
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.Store.RecordAnswer(r.Context(), session.ID, req.Correct)
	if err != nil {
		storeError(w, "RecordAnswer", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewStudySession(updated))
}

func (h *DBHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r, "CompleteSession")
	if !ok {
		return
	}

	updated, err := h.Store.CompleteSession(r.Context(), session.ID, time.Now().UTC())
	if err != nil {
		storeError(w, "CompleteSession", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewStudySession(updated))
}
