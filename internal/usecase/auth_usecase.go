package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
	signIn       CredentialSignIn
}

func NewAuthUseCase(userRepo repository.UserRepository, authProvider AuthProvider, signIn CredentialSignIn) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
		signIn:       signIn,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
}

type AuthResult struct {
	User         *entity.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Phone:     input.Phone,
		Role:      "user",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if cleanupErr := uc.authProvider.DeleteUser(ctx, uid); cleanupErr != nil {
			logger.Error("Failed to clean up auth user %s after profile create failure: %v", uid, cleanupErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, refreshToken, err := uc.signIn.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token, RefreshToken: refreshToken}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, refreshToken, err := uc.signIn.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.authProvider.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if user.Status == "banned" {
		return nil, errors.Forbidden("This account has been banned", nil)
	}

	return &AuthResult{User: user, Token: token, RefreshToken: refreshToken}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, newRefresh, err := uc.signIn.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}

	return &AuthResult{Token: token, RefreshToken: newRefresh}, nil
}
