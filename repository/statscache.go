package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// StatsCache is a best-effort cache for per-user dashboard stats. A miss is
// reported as domain.ErrStatsNotCached; any other error is a cache fault the
// caller may log and ignore.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*domain.DashboardStats, error)
	Set(ctx context.Context, userID string, stats *domain.DashboardStats) error
	Invalidate(ctx context.Context, userID string) error
}
