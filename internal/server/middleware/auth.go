// Package middleware contains the HTTP middleware of the server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// ctxKey is the key type for context values. A dedicated type prevents
// collisions with other packages.
type ctxKey string

// userKey holds the authenticated user record in the request context.
const userKey ctxKey = "auth_user"

// UserResolver turns a verified token subject into a live user record.
// Implemented by the auth service.
type UserResolver interface {
	ResolveUser(ctx context.Context, subject string) (*models.User, error)
}

// JWTVerifier encapsulates access-token verification.
//
// Used by the guard middleware to:
//   - check the token signature (HS256 only)
//   - validate issuer and audience
//   - extract the subject from the claims
type JWTVerifier struct {
	SigningKey string // symmetric HS256 key
	Issuer     string // expected issuer (optional)
	Audience   string // expected audience (optional)
}

// NewJWTVerifier creates a JWTVerifier with the given parameters.
func NewJWTVerifier(signingKey, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{SigningKey: signingKey, Issuer: issuer, Audience: audience}
}

// UserFromContext extracts the authenticated user from the context.
//
// Returns false when the request did not pass the guard.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// Guard returns the bearer-token middleware protecting a route group.
//
// Per request it walks: extract bearer token -> verify signature and
// expiry -> resolve the subject to a live user -> store the user in the
// context. A failure at any step ends the request with a uniform
// 401 "unauthorized": a caller cannot tell a missing token from a bad
// signature from a deleted user, so authorization failures are not
// distinguishable from authentication failures.
//
// The user is re-resolved on every request; a deleted user's token stops
// working even before it expires.
func (v *JWTVerifier) Guard(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w)
				return
			}

			claims := &jwt.RegisteredClaims{}

			parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
			_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				return []byte(v.SigningKey), nil
			})
			if err != nil {
				// covers bad signature and expired tokens alike
				unauthorized(w)
				return
			}

			if v.Issuer != "" && claims.Issuer != v.Issuer {
				unauthorized(w)
				return
			}

			if v.Audience != "" {
				ok := false
				for _, aud := range claims.Audience {
					if aud == v.Audience {
						ok = true
						break
					}
				}
				if !ok {
					unauthorized(w)
					return
				}
			}

			subject := strings.TrimSpace(claims.Subject)
			if subject == "" {
				unauthorized(w)
				return
			}

			user, err := resolver.ResolveUser(r.Context(), subject)
			if err != nil {
				// a stale token for a deleted user is reported exactly
				// like a bad token, never as "not found"
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, serr.ErrUnauthorized.Error(), http.StatusUnauthorized)
}

// ExtractBearer extracts the JWT from the Authorization header.
//
// Expected format:
//
//	Authorization: Bearer <token>
//
// Returns an empty string when the format is wrong.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
