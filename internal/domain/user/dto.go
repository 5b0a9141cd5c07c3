package user

import (
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Username     string          `json:"username"`
	Password     string          `json:"password"`
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name,omitempty"`
	LastName     string          `json:"last_name,omitempty"`
	EmployeeCode string          `json:"employee_code"`
	Department   string          `json:"department,omitempty"`
	Position     string          `json:"position,omitempty"`
	HireDate     int64           `json:"hire_date,omitempty"`
	Salary       decimal.Decimal `json:"salary,omitempty"`
	Role         Role            `json:"role,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	switch r.Role {
	case "", RoleAdmin, RoleManager, RoleEmployee:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN, MANAGER, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserResponse never carries the password hash out of the service layer.
type UserResponse struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name,omitempty"`
	LastName     string          `json:"last_name,omitempty"`
	FullName     string          `json:"full_name"`
	EmployeeCode string          `json:"employee_code"`
	Department   string          `json:"department,omitempty"`
	Position     string          `json:"position,omitempty"`
	HireDate     int64           `json:"hire_date,omitempty"`
	Salary       decimal.Decimal `json:"salary"`
	Active       bool            `json:"active"`
	Role         Role            `json:"role"`
	CreatedAt    int64           `json:"created_at"`
	UpdatedAt    int64           `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		Position:     u.Position,
		HireDate:     u.HireDate,
		Salary:       u.Salary,
		Active:       u.Active,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
