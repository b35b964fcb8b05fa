// Server-side domain models.
package models

import "time"

// User is a registered account that can own sales.
//
// PasswordHash is never serialized; handlers that must expose the hash
// (user creation echoes it back) do so through a dedicated response type.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
