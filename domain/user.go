package domain

import "time"

// Guest account credentials. Logging in with these always succeeds and
// lazily provisions the backing user record on first use.
const (
	GuestEmail    = "guest@example.com"
	GuestPassword = "guest123"
	GuestUsername = "Guest"
)

// User represents an authenticated identity. Users are immutable after
// registration; there is no update or delete surface.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) IsGuest() bool {
	return u != nil && u.Email == GuestEmail
}
