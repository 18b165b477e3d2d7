package transport

import "github.com/taskhive/backend/domain"

// AuthResponse is the register/login response body.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// ErrorMessage is the uniform error body for every failed request.
type ErrorMessage struct {
	Message string `json:"message"`
}
