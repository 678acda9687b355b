package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/andrewpaige1/flashdeck-api/utils"
)

type contextKey string

const userKey = contextKey("user")

// LoadUser resolves the token subject to a user and attaches it to the
// request context. Anonymous requests pass through untouched.
func LoadUser(s *store.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetSubject(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.UserID(subject)
			if err != nil {
				writeDetail(w, http.StatusUnauthorized, detailTokenInvalid, "token_not_valid")
				return
			}

			user, err := s.UserByID(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				writeDetail(w, http.StatusUnauthorized, "User not found", "user_not_found")
				return
			}
			if err != nil {
				log.Println("LoadUser: database error:", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeDetail(w, http.StatusUnauthorized, DetailNotAuthenticated, "")
			return
		}
		next(w, r)
	}
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeDetail(w http.ResponseWriter, status int, detail, code string) {
	body := map[string]string{"detail": detail}
	if code != "" {
		body["code"] = code
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
