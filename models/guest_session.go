package models

import "time"

// GuestSession records an anonymous session id handed to a browser before
// login. The id is the owner key for guest carts and favorites; it keeps
// working across reloads until the client authenticates and the session's
// state is merged into the account.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
