package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	repo user.UserRepository
}

func NewEmployeeService(repo user.UserRepository) user.EmployeeService {
	return &EmployeeServiceImpl{repo: repo}
}

func newEmployeeResponse(u user.User) user.EmployeeResponse {
	resp := user.EmployeeResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		Phone:      u.Phone,
		IsActive:   u.IsActive,
	}
	if u.JoiningDate != nil {
		joined := u.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &joined
	}
	return resp
}

// Create implements user.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req user.CreateEmployeeRequest) (user.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return user.EmployeeResponse{}, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.EmployeeResponse{}, err
	}
	if exists {
		return user.EmployeeResponse{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	var joiningDate *time.Time
	if req.JoiningDate != nil {
		parsed, _ := validator.IsValidDate(*req.JoiningDate)
		joiningDate = &parsed
	}

	department := req.Department
	created, err := s.repo.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.RoleEmployee,
		Department:   &department,
		Phone:        req.Phone,
		JoiningDate:  joiningDate,
		IsActive:     true,
	})
	if err != nil {
		return user.EmployeeResponse{}, err
	}

	return newEmployeeResponse(created), nil
}

// Get implements user.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (user.EmployeeResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.EmployeeResponse{}, user.ErrUserNotFound
		}
		return user.EmployeeResponse{}, err
	}
	return newEmployeeResponse(u), nil
}

// Update implements user.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req user.UpdateEmployeeRequest) (user.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return user.EmployeeResponse{}, err
	}

	err := s.repo.Update(ctx, user.UpdateUserRequest{
		ID:          req.ID,
		Name:        req.Name,
		Department:  req.Department,
		Phone:       req.Phone,
		JoiningDate: req.JoiningDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return user.EmployeeResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return user.EmployeeResponse{}, err
	}
	return newEmployeeResponse(updated), nil
}

// Deactivate implements user.EmployeeService. Deactivation keeps the
// row so attendance and leave history stays attributable.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// List implements user.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter user.EmployeeFilter) ([]user.EmployeeResponse, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	users, total, err := s.repo.ListEmployees(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.EmployeeResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, newEmployeeResponse(u))
	}
	return responses, total, nil
}
