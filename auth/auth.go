package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

type Options struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the payload of both token types.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// Issuer signs and checks HS256 access and refresh tokens.
type Issuer struct {
	opts Options
	now  func() time.Time
}

func NewIssuer(opts Options) (*Issuer, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("auth: JWT secret key not set")
	}
	if opts.AccessTTL <= 0 || opts.RefreshTTL <= 0 {
		return nil, errors.New("auth: token lifetimes must be positive")
	}
	return &Issuer{opts: opts, now: time.Now}, nil
}

func (i *Issuer) Options() Options {
	return i.opts
}

func (i *Issuer) IssuePair(userID uint) (TokenPair, error) {
	refresh, err := i.sign(userID, RefreshToken, i.opts.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	access, err := i.sign(userID, AccessToken, i.opts.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh trades a valid refresh token for a new access token.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.Parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != RefreshToken {
		return "", ErrInvalidToken
	}
	userID, err := UserID(claims.Subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	return i.sign(userID, AccessToken, i.opts.AccessTTL)
}

// Parse verifies signature, issuer, audience and expiry.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return i.opts.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.opts.Issuer),
		jwt.WithAudience(i.opts.Audience),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *Issuer) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	jti, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("auth: generate token id: %w", err)
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.opts.Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{i.opts.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	})

	tokenString, err := token.SignedString(i.opts.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return tokenString, nil
}

// UserID parses a token subject.
func UserID(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("auth: invalid subject %q", subject)
	}
	return uint(id), nil
}
