package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

type AuthConfig struct {
	JWKSURL string
}

func validateJWT(ctx context.Context, tokenString, jwksURL string) (*User, error) {
	keyset, err := jwk.Fetch(ctx, jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", jwksURL, err)
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKeySet(keyset))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	userID, exists := token.Subject()
	if !exists {
		return nil, errors.New("missing user id")
	}

	var email string
	token.Get("email", &email)

	return &User{
		ID:    userID,
		Email: email,
	}, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Auth requires a verifiable bearer JWT on every route except the health
// check. The two failure modes carry distinct messages so clients can tell a
// missing token from a rejected one.
func Auth(config *AuthConfig, logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				logger.Warn("request without token", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				unauthorized(w, "No token provided")
				return
			}

			user, err := validateJWT(r.Context(), tokenString, config.JWKSURL)
			if err != nil {
				logger.Warn("JWT validation failed", "error", err, "remote_addr", r.RemoteAddr)
				unauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			logger.Debug("user authenticated via JWT",
				"user_id", user.ID,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
