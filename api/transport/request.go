package transport

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskhive/backend/domain"
)

// Request DTOs validate their required fields at the boundary, before any
// store mutation.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return requireFields(map[string]string{
		"username": r.Username,
		"email":    r.Email,
		"password": r.Password,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return requireFields(map[string]string{
		"email":    r.Email,
		"password": r.Password,
	})
}

type EmployeeRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (r EmployeeRequest) Validate() error {
	return requireFields(map[string]string{
		"name":       r.Name,
		"position":   r.Position,
		"email":      r.Email,
		"department": r.Department,
	})
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	DueDate     string `json:"dueDate"`
}

func (r TaskCreateRequest) Validate() error {
	return requireFields(map[string]string{"title": r.Title})
}

// ParseDueDate accepts RFC3339 timestamps or bare dates.
func (r TaskCreateRequest) ParseDueDate() (*time.Time, error) {
	if r.DueDate == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, r.DueDate); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid dueDate")
	}
	return &parsed, nil
}

type TaskStatusRequest struct {
	Status string `json:"status"`
}

func (r TaskStatusRequest) Validate() error {
	if r.Status == "" {
		return domain.NewError(domain.ErrCodeInvalid, "status is required")
	}
	if !domain.TaskStatus(r.Status).IsValid() {
		return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown status %q", r.Status))
	}
	return nil
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return domain.NewError(domain.ErrCodeInvalid, "missing required fields: "+strings.Join(missing, ", "))
}
