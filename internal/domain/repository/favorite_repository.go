package repository

import (
	"context"

	"worldmart/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, productID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, productID string) error
	IsFavorited(ctx context.Context, userID, productID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithProduct, int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}
