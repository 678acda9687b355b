package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/middleware"
	"github.com/andrewpaige1/flashdeck-api/store"
)

type DBHandler struct {
	Store  *store.Store
	Tokens *auth.Issuer
}

// Routes registers every endpoint. Routes that need a signed-in user are
// wrapped in middleware.RequireUser; the rest serve anonymous callers too.
func (h *DBHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Decks
	mux.HandleFunc("GET /api/decks/{$}", h.ListDecks)
	mux.HandleFunc("POST /api/decks/{$}", h.CreateDeck)
	mux.HandleFunc("GET /api/decks/{id}/{$}", h.GetDeckByID)
	mux.HandleFunc("PUT /api/decks/{id}/{$}", h.UpdateDeckByID)
	mux.HandleFunc("PATCH /api/decks/{id}/{$}", h.UpdateDeckByID)
	mux.HandleFunc("DELETE /api/decks/{id}/{$}", h.DeleteDeckByID)
	mux.HandleFunc("POST /api/decks/upload/{$}", h.UploadDeck)
	mux.HandleFunc("GET /api/decks/{id}/export/{$}", h.ExportDeck)
	mux.HandleFunc("GET /api/decks/public/{$}", h.ListPublicDecks)
	mux.HandleFunc("GET /api/decks/community/{$}", h.ListCommunityDecks)

	// Likes and comments
	mux.HandleFunc("POST /api/decks/{id}/like/{$}", middleware.RequireUser(h.LikeDeck))
	mux.HandleFunc("DELETE /api/decks/{id}/unlike/{$}", middleware.RequireUser(h.UnlikeDeck))
	mux.HandleFunc("GET /api/decks/{id}/comments/{$}", h.GetDeckComments)
	mux.HandleFunc("POST /api/decks/{id}/comments/{$}", h.CreateDeckComment)

	// Flashcards
	mux.HandleFunc("GET /api/flashcards/{$}", h.ListFlashcards)
	mux.HandleFunc("POST /api/flashcards/{$}", h.CreateFlashCard)
	mux.HandleFunc("GET /api/flashcards/{id}/{$}", h.GetFlashcardByID)
	mux.HandleFunc("PUT /api/flashcards/{id}/{$}", h.UpdateFlashCardByID)
	mux.HandleFunc("PATCH /api/flashcards/{id}/{$}", h.UpdateFlashCardByID)
	mux.HandleFunc("DELETE /api/flashcards/{id}/{$}", h.DeleteFlashCardByID)

	// Study sessions
	mux.HandleFunc("GET /api/sessions/{$}", h.ListSessions)
	mux.HandleFunc("POST /api/sessions/{$}", h.CreateSession)
	mux.HandleFunc("GET /api/sessions/{id}/{$}", h.GetSessionByID)
	mux.HandleFunc("PUT /api/sessions/{id}/{$}", h.UpdateSessionByID)
	mux.HandleFunc("PATCH /api/sessions/{id}/{$}", h.UpdateSessionByID)
	mux.HandleFunc("DELETE /api/sessions/{id}/{$}", h.DeleteSessionByID)
	mux.HandleFunc("POST /api/sessions/{id}/record_answer/{$}", h.RecordAnswer)
	mux.HandleFunc("POST /api/sessions/{id}/complete/{$}", h.CompleteSession)

	// Accounts
	mux.HandleFunc("POST /api/register/{$}", h.Register)
	mux.HandleFunc("POST /api/login/{$}", h.Login)
	mux.HandleFunc("POST /api/token/refresh/{$}", h.RefreshToken)
	mux.HandleFunc("GET /api/profile/{$}", middleware.RequireUser(h.GetProfile))

	return mux
}
