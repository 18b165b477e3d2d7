package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed EmployeeRepository.
func NewEmployeeRepository(pool *pgxpool.Pool) repository.EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `
	SELECT id, name, position, email, department, created_at
	FROM employees
	WHERE id = $1
	`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `
	SELECT id, name, position, email, department, created_at
	FROM employees
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if employee == nil {
		return domain.ErrInvalidPayload
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO employees (id, name, position, email, department)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`

	return r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.Name,
		employee.Position,
		employee.Email,
		employee.Department,
	).Scan(&employee.CreatedAt)
}

func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Position,
		&employee.Email,
		&employee.Department,
		&employee.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}
