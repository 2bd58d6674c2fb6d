package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
}

func NewUserUseCase(userRepo repository.UserRepository, authProvider AuthProvider) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// PublicProfile is what other users see: identity plus reputation.
type PublicProfile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Bio               string    `json:"bio,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	SellerRating      float64   `json:"seller_rating"`
	SellerReviewCount int       `json:"seller_review_count"`
	TotalSwaps        int       `json:"total_swaps"`
	MemberSince       time.Time `json:"member_since"`
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:                user.ID,
		Username:          user.Username,
		Bio:               user.Bio,
		AvatarURL:         user.AvatarURL,
		SellerRating:      user.SellerRating,
		SellerReviewCount: user.SellerReviewCount,
		TotalSwaps:        user.TotalSwaps,
		MemberSince:       user.CreatedAt,
	}, nil
}

type UpdateProfileInput struct {
	Username  *string
	FullName  *string
	Phone     *string
	Bio       *string
	Address   *string
	AvatarURL *string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		if *input.Username == "" {
			return nil, errors.BadRequest("Username cannot be empty", nil)
		}
		user.Username = *input.Username
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeactivateAccount disables sign-in and marks the profile inactive. The
// profile document is kept so listings and swap history stay resolvable.
func (uc *UserUseCase) DeactivateAccount(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.authProvider.DisableUser(ctx, userID); err != nil {
		return errors.Internal("Failed to disable account", err)
	}

	user.Status = "suspended"
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Error("User %s disabled in auth but profile update failed: %v", userID, err)
		return err
	}

	return nil
}
