package service

import (
	"context"
	"time"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/shared/authz"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error)

	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, identity authz.Identity, id string) error
}

// TokenStore keeps the currently issued refresh token per user so logout can
// revoke it. Implemented by the redis cache client.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateRefreshToken(ctx context.Context, userID, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, userID string) error
}
