package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailOrUsername backs the duplicate check on registration.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
