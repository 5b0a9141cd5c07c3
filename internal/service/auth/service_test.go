package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/auth"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/jwt"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/validator"
	"github.com/lazyhr/lazyhr-backend-go/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.UserRepository, jwt.Service) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService("test-secret-key", time.Hour, 24*time.Hour)
	return NewService(userRepo, jwtService), userRepo, jwtService
}

func seedUser(t *testing.T, repo *memory.UserRepository, username, password string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := repo.Create(context.Background(), user.User{
		Username:     username,
		Email:        username + "@lazyhr.local",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		Active:       active,
	})
	require.NoError(t, err)
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, userRepo, jwtService := newTestService(t)
	u := seedUser(t, userRepo, "jdoe", "correct horse", true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.ExpiresAt, time.Now().Unix())
	assert.Greater(t, tokens.RefreshExpiresAt, tokens.ExpiresAt)
	assert.Equal(t, u.ID, tokens.User.ID)
	assert.Empty(t, tokens.User.FirstName)

	// The refresh token round-trips through validation.
	userID, err := jwtService.ValidateRefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	seedUser(t, userRepo, "jdoe", "correct horse", true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "battery staple"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Unknown user and wrong password are indistinguishable.
	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	seedUser(t, userRepo, "jdoe", "correct horse", false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestLoginValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	seedUser(t, userRepo, "jdoe", "correct horse", true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Greater(t, refreshed.ExpiresAt, time.Now().Unix())
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	seedUser(t, userRepo, "jdoe", "correct horse", true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)

	// An access token is the wrong type for the refresh endpoint.
	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.Error(t, err)
}

func TestRefreshAfterDeactivation(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	u := seedUser(t, userRepo, "jdoe", "correct horse", true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, userRepo.SetActive(context.Background(), u.ID, false))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	seedUser(t, userRepo, "jdoe", "correct horse", true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "jdoe", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.Error(t, err)

	// Logging out without a token is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
