package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/repository/bolt"
)

func openStore(t *testing.T) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "taskhive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := bolt.NewUserRepository(openStore(t))
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Uniqueness(t *testing.T) {
	repo := bolt.NewUserRepository(openStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "alice", Email: "alice@x.com"}))

	err := repo.Create(ctx, &domain.User{Username: "alice2", Email: "alice@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists, "duplicate email")

	err = repo.Create(ctx, &domain.User{Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists, "duplicate username")

	found, err := repo.GetByEmailOrUsername(ctx, "none@x.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", found.Email)
}

func TestEmployeeRepository_ListOrderedByCreation(t *testing.T) {
	repo := bolt.NewEmployeeRepository(openStore(t))
	ctx := context.Background()

	first := &domain.Employee{Name: "Bob", Position: "Eng", Email: "b@x.com", Department: "R&D", CreatedAt: time.Now().Add(-time.Hour)}
	second := &domain.Employee{Name: "Carol", Position: "PM", Email: "c@x.com", Department: "Product", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Bob", listed[0].Name)
	assert.Equal(t, "Carol", listed[1].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTaskRepository_ListFiltersAndOrders(t *testing.T) {
	store := openStore(t)
	repo := bolt.NewTaskRepository(store)
	ctx := context.Background()

	mkTask := func(title, owner, assignee string, status domain.TaskStatus) *domain.Task {
		task := &domain.Task{Title: title, AssignedBy: owner, AssignedToID: assignee, Status: status}
		require.NoError(t, repo.Create(ctx, task))
		time.Sleep(2 * time.Millisecond) // distinct creation times for ordering
		return task
	}

	mkTask("older", "alice", "emp-1", domain.StatusPending)
	mkTask("newer", "alice", "emp-2", domain.StatusCompleted)
	mkTask("other owner", "mallory", "emp-1", domain.StatusPending)

	all, err := repo.List(ctx, repository.TaskFilter{AssignedBy: "alice"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Title, "newest first")
	assert.Equal(t, "older", all[1].Title)

	completed, err := repo.List(ctx, repository.TaskFilter{AssignedBy: "alice", Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "newer", completed[0].Title)

	byAssignee, err := repo.List(ctx, repository.TaskFilter{AssignedBy: "alice", AssignedTo: "emp-1"})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, "older", byAssignee[0].Title)
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	repo := bolt.NewTaskRepository(openStore(t))
	ctx := context.Background()

	task := &domain.Task{Title: "Ship", AssignedBy: "alice", Status: domain.StatusPending}
	require.NoError(t, repo.Create(ctx, task))

	updated, err := repo.UpdateStatus(ctx, task.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(task.CreatedAt) || updated.UpdatedAt.Equal(task.CreatedAt))

	reloaded, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, reloaded.Status)

	_, err = repo.UpdateStatus(ctx, "missing", domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_Counts(t *testing.T) {
	repo := bolt.NewTaskRepository(openStore(t))
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	require.NoError(t, repo.Create(ctx, &domain.Task{Title: "a", AssignedBy: "alice", Status: domain.StatusPending, DueDate: &past}))
	require.NoError(t, repo.Create(ctx, &domain.Task{Title: "b", AssignedBy: "alice", Status: domain.StatusCompleted, DueDate: &past}))
	require.NoError(t, repo.Create(ctx, &domain.Task{Title: "c", AssignedBy: "alice", Status: domain.StatusPending, DueDate: &future}))
	require.NoError(t, repo.Create(ctx, &domain.Task{Title: "d", AssignedBy: "mallory", Status: domain.StatusPending}))

	counts, err := repo.CountByStatus(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.StatusPending])
	assert.Equal(t, 1, counts[domain.StatusCompleted])

	overdue, err := repo.CountOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, overdue, "completed tasks never count as overdue")
}

func TestStore_Ping(t *testing.T) {
	store := openStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
