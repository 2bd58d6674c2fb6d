package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearswap/internal/domain/entity"
	"gearswap/pkg/errors"
)

func favoriteFixture() *FavoriteUseCase {
	vehicles := newFakeVehicleRepo(
		&entity.Vehicle{ID: "v-bob", SellerID: "bob", Status: entity.ListingStatusActive},
	)
	parts := newFakePartRepo(
		&entity.Part{ID: "p-bob", SellerID: "bob", Status: entity.ListingStatusActive},
	)
	return NewFavoriteUseCase(newFakeFavoriteRepo(), vehicles, parts)
}

func TestAddFavorite(t *testing.T) {
	uc := favoriteFixture()

	favorite, err := uc.AddFavorite(context.Background(), "alice", "vehicle", "v-bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", favorite.UserID)
	assert.NotEmpty(t, favorite.ID)

	list, total, err := uc.ListFavorites(context.Background(), "alice", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "v-bob", list[0].ItemID)
}

func TestAddFavoriteOwnListing(t *testing.T) {
	uc := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "bob", "part", "p-bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAddFavoriteTwice(t *testing.T) {
	uc := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "alice", "vehicle", "v-bob")
	require.NoError(t, err)

	_, err = uc.AddFavorite(context.Background(), "alice", "vehicle", "v-bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAddFavoriteMissingListing(t *testing.T) {
	uc := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "alice", "vehicle", "no-such")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRemoveFavorite(t *testing.T) {
	uc := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "alice", "vehicle", "v-bob")
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFavorite(context.Background(), "alice", "vehicle", "v-bob"))

	err = uc.RemoveFavorite(context.Background(), "alice", "vehicle", "v-bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
