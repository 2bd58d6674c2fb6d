package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	swapRepo   repository.SwapRepository
	userRepo   repository.UserRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository, swapRepo repository.SwapRepository, userRepo repository.UserRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		swapRepo:   swapRepo,
		userRepo:   userRepo,
	}
}

type CreateReviewInput struct {
	SwapID  string
	Rating  int
	Content string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	swap, err := uc.swapRepo.GetByID(ctx, input.SwapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(reviewerID) {
		return nil, errors.Forbidden("You can only review your own swaps", nil)
	}

	if swap.Status != entity.SwapStatusCompleted {
		return nil, errors.BadRequest("You can only review completed swaps", nil)
	}

	existing, err := uc.reviewRepo.GetBySwapAndReviewer(ctx, input.SwapID, reviewerID)
	if err == nil && existing != nil {
		return nil, errors.Conflict("You already reviewed this swap", nil)
	}

	review := &entity.Review{
		SwapID:     input.SwapID,
		ReviewerID: reviewerID,
		TargetID:   swap.OtherParty(reviewerID),
		Rating:     input.Rating,
		Content:    input.Content,
		Status:     "active",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.updateRatingAggregate(ctx, review.TargetID, input.Rating)

	return review, nil
}

func (uc *ReviewUseCase) ListUserReviews(ctx context.Context, targetID string, page, limit int) ([]*entity.Review, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.reviewRepo.ListByTargetID(ctx, targetID, pagination.PageSize, pagination.Offset)
}

// updateRatingAggregate folds a new rating into the running average on the
// reviewed user. Best-effort, the review itself is already persisted.
func (uc *ReviewUseCase) updateRatingAggregate(ctx context.Context, targetID string, rating int) {
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		logger.Error("Failed to load user %s for rating aggregate: %v", targetID, err)
		return
	}

	total := user.SellerRating*float64(user.SellerReviewCount) + float64(rating)
	user.SellerReviewCount++
	user.SellerRating = total / float64(user.SellerReviewCount)
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Error("Failed to update rating aggregate for user %s: %v", targetID, err)
	}
}
