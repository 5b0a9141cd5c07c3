// Package auth implements credential checks and JWT issuance.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/auth"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/jwt"
)

type Service struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwtService: jwtService}
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.Active {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
		User:             user.ToResponse(u),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.Active {
		return auth.AccessTokenResponse{}, user.ErrUserInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout revokes the refresh token so it can no longer be exchanged.
func (s *Service) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	s.jwtService.RevokeToken(refreshToken)
	return nil
}
