package models

import "time"

// Sale links one owning user to a non-empty set of products.
//
// User is a pointer because the owning user may have been deleted after the
// sale was recorded (sales.user_id is set to NULL in that case); reads must
// tolerate a nil user.
type Sale struct {
	ID        int64     `json:"id"`
	User      *User     `json:"user"`
	Products  []Product `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
