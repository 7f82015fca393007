package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash is kept out of
// JSON responses entirely; clients only ever see the identity fields.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
