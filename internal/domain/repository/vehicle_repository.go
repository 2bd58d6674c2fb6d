package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error)
	SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error)
	IncrementViews(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
}
