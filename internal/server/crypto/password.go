// Password hashing
package crypto

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with bcrypt using the given work factor.
//
// bcrypt generates its own random salt, so two hashes of the same password
// differ. cost must be within bcrypt's supported range (4..31); values
// below the minimum are bumped to bcrypt.DefaultCost by the library.
func HashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
//
// bcrypt's comparison is constant-time over the derived key. A malformed
// hash simply verifies as false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
