package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/dto"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

const (
	msgUsernameTaken      = "A user with that username already exists."
	detailBadCredentials  = "No active account found with the given credentials"
	detailRefreshNotValid = "Token is invalid or expired"
)

// Register creates an account. password2 must repeat password and is not stored.
func (h *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}
	if req.Password != req.Password2 {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"non_field_errors": {"Passwords don't match"}})
		return
	}

	// Check if user already exists
	_, err := h.Store.UserByUsername(r.Context(), req.Username)
	if err == nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"username": {msgUsernameTaken}})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		storeError(w, "Register", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		storeError(w, "Register", err)
		return
	}

	user := models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	err = h.Store.CreateUser(r.Context(), &user)
	if errors.Is(err, store.ErrDuplicate) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"username": {msgUsernameTaken}})
		return
	}
	if err != nil {
		storeError(w, "Register", err)
		return
	}

	log.Printf("Register: created user %s", user.Username)
	writeJSON(w, http.StatusCreated, dto.NewUser(user))
}

// Login exchanges credentials for a refresh and access token pair.
func (h *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}

	user, err := h.Store.UserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		storeError(w, "Login", err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeDetail(w, http.StatusUnauthorized, detailBadCredentials)
		return
	}

	pair, err := h.Tokens.IssuePair(user.ID)
	if err != nil {
		storeError(w, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *DBHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req, nil) {
		return
	}

	access, err := h.Tokens.Refresh(req.Refresh)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": detailRefreshNotValid,
			"code":   "token_not_valid",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (h *DBHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := viewer(r)

	stats, err := h.Store.UserStats(r.Context(), user.ID)
	if err != nil {
		storeError(w, "GetProfile", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewProfile(*user, stats))
}
