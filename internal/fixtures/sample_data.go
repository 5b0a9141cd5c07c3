// Package fixtures seeds demo accounts for local development.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	userService "github.com/lazyhr/lazyhr-backend-go/internal/service/user"
)

type sampleUser struct {
	Username     string
	Password     string
	Email        string
	FirstName    string
	LastName     string
	EmployeeCode string
	Department   string
	Position     string
	Salary       int64
	Role         user.Role
}

var sampleUsers = []sampleUser{
	{
		Username:     "admin",
		Password:     "admin12345",
		Email:        "admin@lazyhr.local",
		FirstName:    "System",
		LastName:     "Admin",
		EmployeeCode: "EMP-0001",
		Department:   "IT",
		Position:     "Administrator",
		Salary:       9000,
		Role:         user.RoleAdmin,
	},
	{
		Username:     "manager",
		Password:     "manager12345",
		Email:        "manager@lazyhr.local",
		FirstName:    "Maya",
		LastName:     "Manager",
		EmployeeCode: "EMP-0002",
		Department:   "Engineering",
		Position:     "Engineering Manager",
		Salary:       7500,
		Role:         user.RoleManager,
	},
	{
		Username:     "employee",
		Password:     "employee12345",
		Email:        "employee@lazyhr.local",
		FirstName:    "Evan",
		LastName:     "Employee",
		EmployeeCode: "EMP-0003",
		Department:   "Engineering",
		Position:     "Software Engineer",
		Salary:       5000,
		Role:         user.RoleEmployee,
	},
}

// SeedSampleUsers creates the demo accounts if they do not exist yet.
// Reruns are no-ops; existing accounts are left untouched.
func SeedSampleUsers(ctx context.Context, svc *userService.Service) error {
	for _, sample := range sampleUsers {
		req := user.CreateUserRequest{
			Username:     sample.Username,
			Password:     sample.Password,
			Email:        sample.Email,
			FirstName:    sample.FirstName,
			LastName:     sample.LastName,
			EmployeeCode: sample.EmployeeCode,
			Department:   sample.Department,
			Position:     sample.Position,
			Salary:       decimal.NewFromInt(sample.Salary),
			Role:         sample.Role,
		}

		created, err := svc.Create(ctx, req)
		if err != nil {
			if errors.Is(err, user.ErrUsernameExists) || errors.Is(err, user.ErrEmailExists) {
				continue
			}
			return fmt.Errorf("failed to seed user %s: %w", sample.Username, err)
		}

		slog.Info("Seeded sample user", "username", created.Username, "role", created.Role)
	}

	return nil
}
