package repository

import (
	"context"
	"time"

	"github.com/taskhive/backend/domain"
)

// TaskFilter scopes task listings. AssignedBy is always set by callers:
// users only ever see tasks they created themselves.
type TaskFilter struct {
	AssignedBy string
	Status     domain.TaskStatus
	AssignedTo string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	// UpdateStatus overwrites only the status field and refreshes updated_at.
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	// CountByStatus returns per-status counts for one user's tasks.
	CountByStatus(ctx context.Context, assignedBy string) (map[domain.TaskStatus]int, error)
	// CountOverdue counts unfinished tasks across all users whose due date
	// lies before the reference time.
	CountOverdue(ctx context.Context, reference time.Time) (int, error)
}
