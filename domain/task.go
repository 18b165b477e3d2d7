package domain

import "time"

// TaskStatus enumerates the task lifecycle states.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is an activity item owned by the user who created it (AssignedBy).
// Only that user sees it in listings and dashboard counts. AssignedTo holds
// the resolved employee record when the task is read back.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       TaskStatus `json:"status"`
	AssignedToID string     `json:"assignedToId,omitempty"`
	AssignedTo   *Employee  `json:"assignedTo,omitempty"`
	AssignedBy   string     `json:"assignedBy"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// IsOverdue reports whether the task has a due date in the past and is not
// completed yet.
func (t *Task) IsOverdue(reference time.Time) bool {
	if t == nil || t.DueDate == nil || t.IsCompleted() {
		return false
	}
	return t.DueDate.Before(reference)
}
