package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase/task"
)

type fakeEmployeeRepo struct {
	employees map[string]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if employee, ok := r.employees[id]; ok {
		clone := *employee
		return &clone, nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, employee := range r.employees {
		out = append(out, *employee)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	clone := *employee
	r.employees[employee.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) Count(ctx context.Context) (int, error) {
	return len(r.employees), nil
}

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.AssignedBy != filter.AssignedBy {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssignedTo != "" && t.AssignedToID != filter.AssignedTo {
			continue
		}
		clone := *t
		clone.AssignedTo = nil
		out = append(out, clone)
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	clone := *t
	clone.AssignedTo = nil
	r.tasks[t.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	clone := *t
	return &clone, nil
}

func (r *fakeTaskRepo) CountByStatus(ctx context.Context, assignedBy string) (map[domain.TaskStatus]int, error) {
	counts := make(map[domain.TaskStatus]int)
	for _, t := range r.tasks {
		if t.AssignedBy == assignedBy {
			counts[t.Status]++
		}
	}
	return counts, nil
}

func (r *fakeTaskRepo) CountOverdue(ctx context.Context, reference time.Time) (int, error) {
	var count int
	for _, t := range r.tasks {
		if t.IsOverdue(reference) {
			count++
		}
	}
	return count, nil
}

type fakeStatsCache struct {
	entries       map[string]*domain.DashboardStats
	invalidations int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string]*domain.DashboardStats)}
}

func (c *fakeStatsCache) Get(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	if stats, ok := c.entries[userID]; ok {
		clone := *stats
		return &clone, nil
	}
	return nil, domain.ErrStatsNotCached
}

func (c *fakeStatsCache) Set(ctx context.Context, userID string, stats *domain.DashboardStats) error {
	clone := *stats
	c.entries[userID] = &clone
	return nil
}

func (c *fakeStatsCache) Invalidate(ctx context.Context, userID string) error {
	c.invalidations++
	delete(c.entries, userID)
	return nil
}

func TestCreateTask_DefaultsToPending(t *testing.T) {
	uc := task.New(newFakeTaskRepo(), newFakeEmployeeRepo(), nil, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		Title:      "Ship",
		AssignedBy: "user-1",
		Status:     domain.StatusCompleted, // client-supplied status is ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "user-1", created.AssignedBy)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateTask_ValidatesAssignee(t *testing.T) {
	employees := newFakeEmployeeRepo()
	bob := &domain.Employee{Name: "Bob", Position: "Eng", Email: "b@x.com", Department: "R&D"}
	require.NoError(t, employees.Create(context.Background(), bob))

	uc := task.New(newFakeTaskRepo(), employees, nil, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		Title:        "Ship",
		AssignedBy:   "user-1",
		AssignedToID: bob.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, "Bob", created.AssignedTo.Name)

	_, err = uc.CreateTask(context.Background(), &domain.Task{
		Title:        "Ship again",
		AssignedBy:   "user-1",
		AssignedToID: "no-such-employee",
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestListTasks_ScopedToOwnerAndResolvesAssignee(t *testing.T) {
	employees := newFakeEmployeeRepo()
	bob := &domain.Employee{Name: "Bob", Position: "Eng", Email: "b@x.com", Department: "R&D"}
	require.NoError(t, employees.Create(context.Background(), bob))

	tasks := newFakeTaskRepo()
	uc := task.New(tasks, employees, nil, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{
		Title: "Ship", AssignedBy: "alice", AssignedToID: bob.ID,
	})
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), &domain.Task{
		Title: "Ship", AssignedBy: "mallory",
	})
	require.NoError(t, err)

	listed, err := uc.ListTasks(context.Background(), repository.TaskFilter{AssignedBy: "alice"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "alice", listed[0].AssignedBy)
	require.NotNil(t, listed[0].AssignedTo)
	assert.Equal(t, bob.ID, listed[0].AssignedTo.ID)
}

func TestUpdateTaskStatus_NoOwnershipCheck(t *testing.T) {
	tasks := newFakeTaskRepo()
	uc := task.New(tasks, newFakeEmployeeRepo(), nil, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		Title: "Ship", AssignedBy: "alice",
	})
	require.NoError(t, err)

	// Any authenticated caller may flip any task's status.
	updated, err := uc.UpdateTaskStatus(context.Background(), created.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, "alice", updated.AssignedBy)

	_, err = uc.UpdateTaskStatus(context.Background(), "no-such-task", domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskWrites_InvalidateStatsCache(t *testing.T) {
	cache := newFakeStatsCache()
	uc := task.New(newFakeTaskRepo(), newFakeEmployeeRepo(), cache, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		Title: "Ship", AssignedBy: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)

	_, err = uc.UpdateTaskStatus(context.Background(), created.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidations)
}
