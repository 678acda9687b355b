package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/config"
	"github.com/andrewpaige1/flashdeck-api/middleware"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/stretchr/testify/require"
)

const testPassword = "secret123"

type testEnv struct {
	t       *testing.T
	store   *store.Store
	tokens  *auth.Issuer
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.Connect(&config.Config{
		DBDriver:   "sqlite",
		DBURL:      "file::memory:?_foreign_keys=on",
		DBLogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens, err := auth.NewIssuer(auth.Options{
		Secret:     []byte("test-secret"),
		Issuer:     "flashdeck-api",
		Audience:   "flashdeck",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	s := store.New(db)
	h := &DBHandler{Store: s, Tokens: tokens}
	handler := middleware.EnsureValidToken(tokens)(middleware.LoadUser(s)(h.Routes()))
	return &testEnv{t: t, store: s, tokens: tokens, handler: handler}
}

// do sends body as JSON. A string body is sent verbatim.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// signUp stores a user and returns it with a fresh access token.
func (e *testEnv) signUp(username string) (models.User, string) {
	e.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(e.t, err)
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: hash}
	require.NoError(e.t, e.store.CreateUser(context.Background(), &user))

	pair, err := e.tokens.IssuePair(user.ID)
	require.NoError(e.t, err)
	return user, pair.Access
}

func (e *testEnv) deck(name string, public bool, owner *models.User) models.Deck {
	e.t.Helper()
	deck := models.Deck{Name: name, IsPublic: public}
	if owner != nil {
		deck.OwnerID = &owner.ID
	}
	require.NoError(e.t, e.store.CreateDeck(context.Background(), &deck))
	return deck
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireStatus(t *testing.T, want int, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
