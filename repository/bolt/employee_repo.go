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

type employeeRepository struct {
	store *Store
}

// NewEmployeeRepository returns a bbolt-backed employee repository.
func NewEmployeeRepository(store *Store) repository.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var found *domain.Employee
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		raw := tx.Bucket(bucketEmployees).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var employee domain.Employee
		if err := json.Unmarshal(raw, &employee); err != nil {
			return err
		}
		found = &employee
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return found, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		cursor := tx.Bucket(bucketEmployees).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var employee domain.Employee
			if err := json.Unmarshal(v, &employee); err != nil {
				continue
			}
			employees = append(employees, employee)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].CreatedAt.Before(employees[j].CreatedAt)
	})
	return employees, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if employee == nil {
		return domain.ErrInvalidPayload
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(employee)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(bucketEmployees).Put([]byte(employee.ID), payload)
	})
}

func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		count = tx.Bucket(bucketEmployees).Stats().KeyN
		return nil
	})
	return count, err
}
