package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/andrewpaige1/flashdeck-api/auth"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const (
	DetailNotAuthenticated = "Authentication credentials were not provided."
	DetailPermissionDenied = "You do not have permission to perform this action."
	detailTokenInvalid     = "Given token not valid for any token type"
)

// CustomClaims contains the claims we issue beyond the registered ones.
type CustomClaims struct {
	TokenType string `json:"token_type"`
}

// Validate rejects refresh tokens presented as bearer credentials.
func (c *CustomClaims) Validate(ctx context.Context) error {
	if c.TokenType != auth.AccessToken {
		return errors.New("token is not an access token")
	}
	return nil
}

// EnsureValidToken validates bearer tokens signed by issuer. Requests without
// a token pass through anonymously; requests with a bad token get a 401.
func EnsureValidToken(issuer *auth.Issuer) func(next http.Handler) http.Handler {
	opts := issuer.Options()

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return opts.Secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		opts.Issuer,
		[]string{opts.Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)
		writeDetail(w, http.StatusUnauthorized, detailTokenInvalid, "token_not_valid")
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(next)
	}
}
