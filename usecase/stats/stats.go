package stats

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// UseCase computes the per-user dashboard aggregation. Task counts are
// scoped to the caller; the employee count is the global directory size.
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

// DashboardStats returns the caller's task counts by status, the completion
// rate and the global employee count. Cache faults are logged and the
// request falls through to the primary store.
func (uc *UseCase) DashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrStatsNotCached) {
			uc.logger.Warn("stats cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	counts, err := uc.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalEmployees, err := uc.employees.Count(ctx)
	if err != nil {
		return nil, err
	}

	completed := counts[domain.StatusCompleted]
	inProgress := counts[domain.StatusInProgress]
	pending := counts[domain.StatusPending]
	total := completed + inProgress + pending

	stats := &domain.DashboardStats{
		TotalTasks:      total,
		CompletedTasks:  completed,
		InProgressTasks: inProgress,
		PendingTasks:    pending,
		CompletionRate:  domain.CompletionRate(completed, total),
		TotalEmployees:  totalEmployees,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, userID, stats); err != nil {
			uc.logger.Warn("stats cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return stats, nil
}
