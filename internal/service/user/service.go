// Package user implements account management.
package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
)

type Service struct {
	userRepo user.UserRepository
	clk      *clock.Clock
}

func NewService(userRepo user.UserRepository, clk *clock.Clock) *Service {
	return &Service{userRepo: userRepo, clk: clk}
}

// Create registers a new active user. The role defaults to EMPLOYEE when
// the request leaves it empty.
func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = user.RoleEmployee
	}

	now := s.clk.NowMillis()
	u := user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmployeeCode: req.EmployeeCode,
		Department:   req.Department,
		Position:     req.Position,
		HireDate:     req.HireDate,
		Salary:       req.Salary,
		Active:       true,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.userRepo.List(ctx)
}

// Deactivate disables login for the user without deleting any records.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.userRepo.SetActive(ctx, id, false)
}

// Activate re-enables a previously deactivated user.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.userRepo.SetActive(ctx, id, true)
}
