package bolt

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	boltdb "go.etcd.io/bbolt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// storedTask persists the assignee by id only; the resolved employee record
// is a read-time concern.
type storedTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	AssignedBy  string     `json:"assigned_by"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t storedTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       domain.TaskStatus(t.Status),
		AssignedToID: t.AssignedTo,
		AssignedBy:   t.AssignedBy,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func fromDomainTask(task *domain.Task) storedTask {
	return storedTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		AssignedTo:  task.AssignedToID,
		AssignedBy:  task.AssignedBy,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type taskRepository struct {
	store *Store
}

// NewTaskRepository returns a bbolt-backed task repository.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var found *domain.Task
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		raw := tx.Bucket(bucketTasks).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var stored storedTask
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		found = stored.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrTaskNotFound
	}
	return found, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		cursor := tx.Bucket(bucketTasks).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var stored storedTask
			if err := json.Unmarshal(v, &stored); err != nil {
				continue
			}
			if stored.AssignedBy != filter.AssignedBy {
				continue
			}
			if filter.Status != "" && stored.Status != string(filter.Status) {
				continue
			}
			if filter.AssignedTo != "" && stored.AssignedTo != filter.AssignedTo {
				continue
			}
			tasks = append(tasks, *stored.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	payload, err := json.Marshal(fromDomainTask(task))
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(bucketTasks).Put([]byte(task.ID), payload)
	})
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	var updated *domain.Task
	err := r.store.db.Update(func(tx *boltdb.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return domain.ErrTaskNotFound
		}
		var stored storedTask
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		stored.Status = string(status)
		stored.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(id), payload); err != nil {
			return err
		}
		updated = stored.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, assignedBy string) (map[domain.TaskStatus]int, error) {
	counts := make(map[domain.TaskStatus]int)
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		cursor := tx.Bucket(bucketTasks).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var stored storedTask
			if err := json.Unmarshal(v, &stored); err != nil {
				continue
			}
			if stored.AssignedBy == assignedBy {
				counts[domain.TaskStatus(stored.Status)]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *taskRepository) CountOverdue(ctx context.Context, reference time.Time) (int, error) {
	var count int
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		cursor := tx.Bucket(bucketTasks).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var stored storedTask
			if err := json.Unmarshal(v, &stored); err != nil {
				continue
			}
			if stored.DueDate != nil &&
				stored.DueDate.Before(reference) &&
				stored.Status != string(domain.StatusCompleted) {
				count++
			}
		}
		return nil
	})
	return count, err
}
