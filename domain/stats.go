package domain

import "math"

// DashboardStats aggregates a user's tasks by status. TotalEmployees is the
// global directory size, not scoped to the caller.
type DashboardStats struct {
	TotalTasks      int     `json:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	PendingTasks    int     `json:"pendingTasks"`
	CompletionRate  float64 `json:"completionRate"`
	TotalEmployees  int     `json:"totalEmployees"`
}

// CompletionRate returns the percentage of completed tasks rounded to two
// decimals, or 0 when there are no tasks.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}
