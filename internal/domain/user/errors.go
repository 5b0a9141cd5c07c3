package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameExists        = errors.New("username already registered")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrUserInactive          = errors.New("user is deactivated")
	ErrAdminAccessRequired   = errors.New("admin access required")
)
