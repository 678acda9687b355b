package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/middleware"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

const (
	detailNotFound    = "Not found."
	detailServerError = "A server error occurred."
	detailInvalidPage = "Invalid page."

	defaultPageSize = 20
	maxPageSize     = 100
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: encode response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// storeError maps repository failures onto responses. Internal errors are
// logged and never echoed to the client.
func storeError(w http.ResponseWriter, handler string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return
	}
	log.Printf("%s: %v", handler, err)
	writeDetail(w, http.StatusInternalServerError, detailServerError)
}

// decodeJSON reads the request body into dst. An empty body decodes as {}.
// On failure it writes the 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		writeJSON(w, http.StatusBadRequest, fieldErrors{typeErr.Field: {"Incorrect type."}})
		return false
	}
	writeDetail(w, http.StatusBadRequest, fmt.Sprintf("JSON parse error - %v", err))
	return false
}

// pathID parses a numeric path wildcard. Anything else is a 404.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional numeric filter such as ?deck=3.
func queryID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{name: {"Enter a whole number."}})
		return 0, false
	}
	return uint(id), true
}

// viewer returns the authenticated user, or nil and 0 for anonymous callers.
func viewer(r *http.Request) (*models.User, uint) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, 0
	}
	return user, user.ID
}

// authorizeDeckWrite answers 401 or 403 when the caller may not modify deck.
func authorizeDeckWrite(w http.ResponseWriter, deck *models.Deck, userID uint) bool {
	if deck.EditableBy(userID) {
		return true
	}
	if userID == 0 {
		writeDetail(w, http.StatusUnauthorized, middleware.DetailNotAuthenticated)
	} else {
		writeDetail(w, http.StatusForbidden, middleware.DetailPermissionDenied)
	}
	return false
}

type pageRequest struct {
	number int
	size   int
}

func (p pageRequest) window() store.Page {
	return store.Page{Offset: (p.number - 1) * p.size, Limit: p.size}
}

// parsePage reads ?page and ?page_size.
func parsePage(w http.ResponseWriter, r *http.Request) (pageRequest, bool) {
	q := r.URL.Query()
	p := pageRequest{number: 1, size: defaultPageSize}

	if raw := q.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.size = min(n, maxPageSize)
		}
	}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusNotFound, detailInvalidPage)
			return p, false
		}
		p.number = n
	}
	return p, true
}

// writePage answers with a paginated body, or 404 when the page is past the
// end. Page 1 is always valid.
func writePage[T any](w http.ResponseWriter, r *http.Request, p pageRequest, count int64, results []T) {
	if p.number > 1 && int64(p.number-1)*int64(p.size) >= count {
		writeDetail(w, http.StatusNotFound, detailInvalidPage)
		return
	}

	page := dto.Page[T]{Count: count, Results: results}
	if int64(p.number)*int64(p.size) < count {
		next := pageURL(r, p.number+1)
		page.Next = &next
	}
	if p.number > 1 {
		prev := pageURL(r, p.number-1)
		page.Previous = &prev
	}
	writeJSON(w, http.StatusOK, page)
}

func pageURL(r *http.Request, number int) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	q := r.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
