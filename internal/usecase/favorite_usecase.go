package usecase

import (
	"context"
	"log"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (u *FavoriteUseCase) AddFavorite(ctx context.Context, session Session, productID string) (*entity.Favorite, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == session.UserID {
		return nil, errors.BadRequest("Cannot add your own product to favorites", nil)
	}

	favorite, err := u.favoriteRepo.Add(ctx, session.UserID, productID)
	if errors.Is(err, "CONFLICT") {
		// Already favorited; treat the add as settled.
		return &entity.Favorite{UserID: session.UserID, ProductID: productID}, nil
	}
	if err != nil {
		return nil, err
	}

	return favorite, nil
}

func (u *FavoriteUseCase) RemoveFavorite(ctx context.Context, session Session, productID string) error {
	return u.favoriteRepo.Remove(ctx, session.UserID, productID)
}

// ToggleFavorite flips the favorite state and reports the new state.
func (u *FavoriteUseCase) ToggleFavorite(ctx context.Context, session Session, productID string) (bool, error) {
	favorited, err := u.favoriteRepo.IsFavorited(ctx, session.UserID, productID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := u.favoriteRepo.Remove(ctx, session.UserID, productID); err != nil && !errors.Is(err, "NOT_FOUND") {
			return true, err
		}
		log.Printf("ToggleFavorite: User %s removed product %s", session.UserID, productID)
		return false, nil
	}

	if _, err := u.AddFavorite(ctx, session, productID); err != nil {
		return false, err
	}
	log.Printf("ToggleFavorite: User %s added product %s", session.UserID, productID)
	return true, nil
}

func (u *FavoriteUseCase) ListFavorites(ctx context.Context, session Session, page, pageSize int) ([]entity.FavoriteWithProduct, int64, error) {
	offset := (page - 1) * pageSize
	return u.favoriteRepo.ListByUserID(ctx, session.UserID, pageSize, offset)
}

func (u *FavoriteUseCase) IsFavorited(ctx context.Context, session Session, productID string) (bool, error) {
	return u.favoriteRepo.IsFavorited(ctx, session.UserID, productID)
}

func (u *FavoriteUseCase) CountFavorites(ctx context.Context, session Session) (int64, error) {
	return u.favoriteRepo.Count(ctx, session.UserID)
}
