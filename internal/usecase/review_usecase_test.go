package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearswap/internal/domain/entity"
	"gearswap/pkg/errors"
)

func reviewFixture() (*ReviewUseCase, *fakeReviewRepo, *fakeSwapRepo, *fakeUserRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "alice", Username: "alice"},
		&entity.User{ID: "bob", Username: "bob", SellerRating: 4, SellerReviewCount: 1},
	)
	swaps := newFakeSwapRepo(
		&entity.Swap{ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob", Status: entity.SwapStatusCompleted},
		&entity.Swap{ID: "swap-2", InitiatorID: "alice", ReceiverID: "bob", Status: entity.SwapStatusPending},
	)
	reviews := newFakeReviewRepo()

	uc := NewReviewUseCase(reviews, swaps, users)
	return uc, reviews, swaps, users
}

func TestCreateReview(t *testing.T) {
	uc, _, _, users := reviewFixture()

	review, err := uc.CreateReview(context.Background(), "alice", CreateReviewInput{
		SwapID:  "swap-1",
		Rating:  5,
		Content: "Smooth trade",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", review.TargetID)
	assert.Equal(t, "active", review.Status)

	bob, err := users.GetByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, bob.SellerReviewCount)
	assert.InDelta(t, 4.5, bob.SellerRating, 0.001)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	uc, _, _, _ := reviewFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), "alice", CreateReviewInput{
			SwapID: "swap-1", Rating: rating,
		})
		require.Error(t, err, "rating %d should be rejected", rating)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	}
}

func TestCreateReviewPartyOnly(t *testing.T) {
	uc, _, _, _ := reviewFixture()

	_, err := uc.CreateReview(context.Background(), "mallory", CreateReviewInput{
		SwapID: "swap-1", Rating: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateReviewRequiresCompletedSwap(t *testing.T) {
	uc, _, _, _ := reviewFixture()

	_, err := uc.CreateReview(context.Background(), "alice", CreateReviewInput{
		SwapID: "swap-2", Rating: 4,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateReviewOncePerSwap(t *testing.T) {
	uc, _, _, _ := reviewFixture()

	_, err := uc.CreateReview(context.Background(), "alice", CreateReviewInput{
		SwapID: "swap-1", Rating: 5,
	})
	require.NoError(t, err)

	_, err = uc.CreateReview(context.Background(), "alice", CreateReviewInput{
		SwapID: "swap-1", Rating: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateReviewBothPartiesMayReview(t *testing.T) {
	uc, _, _, _ := reviewFixture()

	_, err := uc.CreateReview(context.Background(), "alice", CreateReviewInput{
		SwapID: "swap-1", Rating: 5,
	})
	require.NoError(t, err)

	review, err := uc.CreateReview(context.Background(), "bob", CreateReviewInput{
		SwapID: "swap-1", Rating: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", review.TargetID)
}

func TestListUserReviews(t *testing.T) {
	uc, reviews, _, _ := reviewFixture()
	require.NoError(t, reviews.Create(context.Background(), &entity.Review{
		SwapID: "swap-1", ReviewerID: "alice", TargetID: "bob", Rating: 5, Status: "active",
	}))
	require.NoError(t, reviews.Create(context.Background(), &entity.Review{
		SwapID: "swap-3", ReviewerID: "carol", TargetID: "bob", Rating: 2, Status: "removed",
	}))

	list, total, err := uc.ListUserReviews(context.Background(), "bob", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "removed reviews are hidden")
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
}
