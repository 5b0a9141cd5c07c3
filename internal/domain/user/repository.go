package user

import (
	"context"
)

// UserRepository is the directory the rule engines resolve user ids against.
type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, active bool) error
}
