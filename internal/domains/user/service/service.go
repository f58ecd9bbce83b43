package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/authz"
	"bookreview-backend/pkg/jwt"
)

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	tokens     TokenStore
	refreshTTL time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *jwt.Manager,
	tokens TokenStore,
	refreshTTL time.Duration,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		tokens:     tokens,
		refreshTTL: refreshTTL,
	}
}

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profilePicture := req.ProfilePicture
	if profilePicture == "" {
		profilePicture = model.DefaultProfilePicture
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           model.RoleUser,
		ProfilePicture: profilePicture,
		Bio:            req.Bio,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Not-found becomes a credentials failure so the response does not
		// reveal which accounts exist.
		return nil, model.ErrBadLogin
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, model.ErrBadLogin
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	return s.tokens.RevokeRefreshToken(ctx, userID)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired refresh token")
	}

	valid, err := s.tokens.ValidateRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("validate refresh token: %w", err)
	}
	if !valid {
		return nil, apperror.NewUnauthorized("refresh token has been revoked")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid user ID in token")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid user ID")
	}
	return s.userRepo.GetByID(ctx, oid)
}

func (s *userService) Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateUserRequest) (*model.User, error) {
	if !authz.CanMutate(identity, id, authz.ActionUpdate, authz.ResourceUser) {
		return nil, model.ErrNotAllowed
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid user ID")
	}

	// Only the profile fields are writable here.
	fields := bson.M{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.ProfilePicture != nil {
		fields["profilePicture"] = *req.ProfilePicture
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if len(fields) == 0 {
		return s.userRepo.GetByID(ctx, oid)
	}

	return s.userRepo.Update(ctx, oid, fields)
}

func (s *userService) Delete(ctx context.Context, identity authz.Identity, id string) error {
	if !authz.CanMutate(identity, id, authz.ActionDelete, authz.ResourceUser) {
		return model.ErrNotAllowed
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewValidation("invalid user ID")
	}

	if err := s.userRepo.Delete(ctx, oid); err != nil {
		return err
	}

	// A deleted account keeps no session.
	return s.tokens.RevokeRefreshToken(ctx, id)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	userID := user.ID.Hex()

	accessToken, err := s.jwtManager.GenerateAccessToken(userID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokens.StoreRefreshToken(ctx, userID, refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
