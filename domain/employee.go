package domain

import "time"

// Employee is a directory record. The directory is shared across all users:
// listing and counting employees is never scoped to the caller.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}
