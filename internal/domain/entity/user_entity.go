package entity

import (
	"time"
)

// AccessAuth is the access tag embedded in issued auth tokens.
const AccessAuth = "auth"

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	ID        string
	Email     string
	Password  string
	Tokens    []TokenGrant
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenGrant is one issued token together with its access tag.
// The list on User grows by append only.
type TokenGrant struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// PublicUser is the outward-facing projection of a User.
// Password and token grants are never serialized.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public returns the projection safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
