package overdue

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskhive/backend/repository"
)

// Reporter periodically logs how many unfinished tasks are past their due
// date. Observability only; it never mutates task state.
type Reporter struct {
	tasks    repository.TaskRepository
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

func NewReporter(tasks repository.TaskRepository, interval time.Duration, logger *zap.Logger) *Reporter {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reporter{
		tasks:    tasks,
		logger:   logger,
		interval: interval,
		cron:     cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		r.Report(ctx)
	})

	return r
}

// Start launches the cron scheduler.
func (r *Reporter) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("overdue reporter started", zap.Duration("interval", r.interval))
}

// Stop gracefully stops the scheduler.
func (r *Reporter) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("overdue reporter stopped")
}

// Report runs one overdue count synchronously.
func (r *Reporter) Report(ctx context.Context) {
	count, err := r.tasks.CountOverdue(ctx, time.Now())
	if err != nil {
		r.logger.Error("overdue count failed", zap.Error(err))
		return
	}
	if count == 0 {
		return
	}
	r.logger.Warn("tasks past due date", zap.Int("count", count))
}
