package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, title, description, status, assigned_to, assigned_by, due_date, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT id, title, description, status, assigned_to, assigned_by, due_date, created_at, updated_at
	FROM tasks
	WHERE assigned_by = $1
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR assigned_to = $3)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.AssignedBy, string(filter.Status), filter.AssignedTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, status, assigned_to, assigned_by, due_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		nullString(task.AssignedToID),
		task.AssignedBy,
		task.DueDate,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET status = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, title, description, status, assigned_to, assigned_by, due_date, created_at, updated_at
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, string(status)))
}

func (r *taskRepository) CountByStatus(ctx context.Context, assignedBy string) (map[domain.TaskStatus]int, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM tasks
	WHERE assigned_by = $1
	GROUP BY status
	`
	rows, err := r.pool.Query(ctx, query, assignedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.TaskStatus(status)] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) CountOverdue(ctx context.Context, reference time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM tasks
	WHERE due_date IS NOT NULL
	  AND due_date < $1
	  AND status <> $2
	`
	var count int
	err := r.pool.QueryRow(ctx, query, reference, string(domain.StatusCompleted)).Scan(&count)
	return count, err
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task       domain.Task
		status     string
		assignedTo *string
		dueDate    *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&assignedTo,
		&task.AssignedBy,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if assignedTo != nil {
		task.AssignedToID = *assignedTo
	}
	task.DueDate = dueDate
	return &task, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
