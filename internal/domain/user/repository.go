package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Deactivate(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]User, int64, error)
	ListActiveEmployeeIDs(ctx context.Context) ([]string, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
