package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/backend/domain"
)

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		completed, total int
		want             float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{7, 9, 77.78},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.CompletionRate(tc.completed, tc.total),
			"completed=%d total=%d", tc.completed, tc.total)
	}
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range []domain.TaskStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.TaskStatus("done").IsValid())
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&domain.Task{Status: domain.StatusPending}).IsOverdue(now), "no due date")
	assert.True(t, (&domain.Task{Status: domain.StatusPending, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&domain.Task{Status: domain.StatusCompleted, DueDate: &past}).IsOverdue(now), "completed tasks are never overdue")
	assert.False(t, (&domain.Task{Status: domain.StatusPending, DueDate: &future}).IsOverdue(now))
}
