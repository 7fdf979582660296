package repository

import (
	"context"

	"worldmart/internal/domain/entity"
)

// ProductFilter narrows the browse listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string
	Condition  string
	Location   string
	Query      string
	SellerID   string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	// ListBySeller returns a seller's own listings in every status, newest
	// first.
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error)
	IncrementViews(ctx context.Context, id string) error
}
