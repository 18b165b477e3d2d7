package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// UseCase implements task creation, owner-scoped listing and status updates.
type UseCase struct {
	tasks     repository.TaskRepository
	employees repository.EmployeeRepository
	cache     repository.StatsCache
	logger    *zap.Logger
}

func New(tasks repository.TaskRepository, employees repository.EmployeeRepository, cache repository.StatsCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		employees: employees,
		cache:     cache,
		logger:    logger,
	}
}

// ListTasks returns the caller's tasks, optionally narrowed by status and
// assignee, with each assignee resolved to the full employee record.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		uc.resolveAssignee(ctx, &tasks[i])
	}
	return tasks, nil
}

// CreateTask persists a new task for the caller. AssignedBy is forced to the
// authenticated user, status starts as pending, and the assignee (when set)
// must name an existing employee.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Status = domain.StatusPending

	if task.AssignedToID != "" {
		assignee, err := uc.employees.GetByID(ctx, task.AssignedToID)
		if err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return nil, domain.ErrEmployeeNotFound
			}
			return nil, err
		}
		task.AssignedTo = assignee
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx, task.AssignedBy)
	uc.logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("assigned_by", task.AssignedBy))
	return task, nil
}

// UpdateTaskStatus overwrites only the status of the identified task.
// It deliberately performs no ownership check against the caller; any
// authenticated user may move any task between statuses.
func (uc *UseCase) UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := uc.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	uc.resolveAssignee(ctx, task)
	uc.invalidateStats(ctx, task.AssignedBy)
	return task, nil
}

func (uc *UseCase) resolveAssignee(ctx context.Context, task *domain.Task) {
	if task == nil || task.AssignedToID == "" || task.AssignedTo != nil {
		return
	}
	assignee, err := uc.employees.GetByID(ctx, task.AssignedToID)
	if err != nil {
		// A dangling reference degrades to the bare id rather than failing
		// the whole listing.
		uc.logger.Warn("assignee lookup failed",
			zap.String("task_id", task.ID),
			zap.String("employee_id", task.AssignedToID),
			zap.Error(err))
		return
	}
	task.AssignedTo = assignee
}

func (uc *UseCase) invalidateStats(ctx context.Context, userID string) {
	if uc.cache == nil || userID == "" {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warn("stats cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
