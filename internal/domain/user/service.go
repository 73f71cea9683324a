package user

import (
	"context"
)

// EmployeeService is the admin-facing directory surface.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, int64, error)
}
