package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) error
	Count(ctx context.Context) (int, error)
}
