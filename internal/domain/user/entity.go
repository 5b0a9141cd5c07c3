package user

import "github.com/shopspring/decimal"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access, can manage users
	RoleManager  Role = "MANAGER"  // Can approve leave and correct attendance
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	EmployeeCode string
	Department   string
	Position     string
	HireDate     int64 // Unix milliseconds
	Salary       decimal.Decimal
	Active       bool
	Role         Role

	CreatedAt int64 // Unix milliseconds
	UpdatedAt int64 // Unix milliseconds
}

// CanApprove checks if the role can approve leave requests
func (r Role) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// IsAdmin checks if user can manage the directory
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role.CanApprove()
}

// FullName falls back to the username when no name parts are set.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
