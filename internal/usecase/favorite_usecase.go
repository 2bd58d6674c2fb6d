package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/utils"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	vehicleRepo  repository.VehicleRepository
	partRepo     repository.PartRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, vehicleRepo repository.VehicleRepository, partRepo repository.PartRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		vehicleRepo:  vehicleRepo,
		partRepo:     partRepo,
	}
}

func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, itemType, itemID string) (*entity.Favorite, error) {
	ownerID, err := uc.resolveItemOwner(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	if ownerID == userID {
		return nil, errors.BadRequest("Cannot favorite your own listing", nil)
	}

	exists, err := uc.favoriteRepo.Exists(ctx, userID, itemType, itemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict("Listing is already in your favorites", nil)
	}

	favorite := &entity.Favorite{
		UserID:    userID,
		ItemType:  itemType,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}

	if err := uc.favoriteRepo.Add(ctx, favorite); err != nil {
		return nil, err
	}

	return favorite, nil
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, itemType, itemID string) error {
	exists, err := uc.favoriteRepo.Exists(ctx, userID, itemType, itemID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Favorite not found", nil)
	}

	return uc.favoriteRepo.Remove(ctx, userID, itemType, itemID)
}

func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string, page, limit int) ([]*entity.Favorite, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.favoriteRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *FavoriteUseCase) resolveItemOwner(ctx context.Context, itemType, itemID string) (string, error) {
	switch itemType {
	case entity.SwapItemTypeVehicle:
		vehicle, err := uc.vehicleRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", err
		}
		return vehicle.SellerID, nil
	case entity.SwapItemTypePart:
		part, err := uc.partRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", err
		}
		return part.SellerID, nil
	default:
		return "", errors.BadRequest("Invalid item type", nil)
	}
}
