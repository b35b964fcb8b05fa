// Package crypto contains the cryptographic primitives used by the server:
//
//   - generation and signing of JWT access tokens;
//   - token parameters (issuer, audience, TTL);
//   - password hashing and verification (bcrypt).
package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig describes how access tokens are generated.
type JWTConfig struct {
	// Issuer is the iss claim (who issued the token).
	Issuer string
	// Audience is the aud claim (who the token is intended for).
	Audience string
	// SigningKey is the secret key for the HS256 signature.
	// Must be long and random.
	SigningKey string
	// AccessTTL is the token lifetime.
	AccessTTL time.Duration
}

// NewAccessToken creates and signs a JWT access token for a user.
//
// The token carries the standard RegisteredClaims:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (userID)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// HS256 is the only supported signing algorithm. Expiry is the only
// invalidation mechanism, there is no server-side revocation list.
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{cfg.Audience},
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}
