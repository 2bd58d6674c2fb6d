package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID, itemType, itemID string) error
	Exists(ctx context.Context, userID, itemType, itemID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error)
}
