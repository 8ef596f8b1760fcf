package user

import (
	"time"

	"github.com/google/uuid"
)

// User is created on first successful sign-in and refreshed on every later
// one. GoogleID is empty for accounts registered with a local password.
type User struct {
	ID           uuid.UUID `json:"id"`
	GoogleID     string    `json:"googleId,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
