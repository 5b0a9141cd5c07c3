// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces, used by tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (r *UserRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == newUser.Username {
			return user.User{}, user.ErrUsernameExists
		}
		if u.Email == newUser.Email {
			return user.User{}, user.ErrEmailExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = uuid.NewString()
	}
	r.users[newUser.ID] = newUser

	return newUser, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}

	return u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}

	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	return users, nil
}

func (r *UserRepository) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = u

	return nil
}

func (r *UserRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Active = active
	r.users[id] = u

	return nil
}
