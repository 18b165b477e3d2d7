package employee

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// UseCase exposes the shared employee directory. Employees are never scoped
// to a user and have no update or delete surface.
type UseCase struct {
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

func New(employees repository.EmployeeRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		employees: employees,
		logger:    logger,
	}
}

func (uc *UseCase) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return uc.employees.List(ctx)
}

func (uc *UseCase) CreateEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	if err := uc.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	uc.logger.Info("employee created",
		zap.String("employee_id", employee.ID),
		zap.String("department", employee.Department))
	return employee, nil
}
