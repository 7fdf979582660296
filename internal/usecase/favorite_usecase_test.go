package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmart/internal/domain/entity"
	"worldmart/pkg/errors"
)

type fakeFavoriteRepo struct {
	favorites map[string]bool // userID_productID
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[string]bool)}
}

func favKey(userID, productID string) string {
	return userID + "_" + productID
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	key := favKey(userID, productID)
	if r.favorites[key] {
		return nil, errors.Conflict("Product is already in favorites", nil)
	}
	r.favorites[key] = true
	return &entity.Favorite{UserID: userID, ProductID: productID}, nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, productID string) error {
	key := favKey(userID, productID)
	if !r.favorites[key] {
		return errors.NotFound("Favorite", nil)
	}
	delete(r.favorites, key)
	return nil
}

func (r *fakeFavoriteRepo) IsFavorited(ctx context.Context, userID, productID string) (bool, error) {
	return r.favorites[favKey(userID, productID)], nil
}

func (r *fakeFavoriteRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithProduct, int64, error) {
	return nil, int64(len(r.favorites)), nil
}

func (r *fakeFavoriteRepo) Count(ctx context.Context, userID string) (int64, error) {
	return int64(len(r.favorites)), nil
}

func newFavoriteFixture() (*FavoriteUseCase, *fakeFavoriteRepo) {
	favRepo := newFakeFavoriteRepo()
	prodRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SellerID: "seller-1", Title: "Mechanical Keyboard", Status: "active"},
	}}
	return NewFavoriteUseCase(favRepo, prodRepo), favRepo
}

func TestAddFavoriteIdempotent(t *testing.T) {
	uc, _ := newFavoriteFixture()
	ctx := context.Background()
	session := Session{UserID: "buyer-1"}

	_, err := uc.AddFavorite(ctx, session, "prod-1")
	require.NoError(t, err)

	// A repeated add settles instead of surfacing the conflict.
	favorite, err := uc.AddFavorite(ctx, session, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", favorite.ProductID)
}

func TestAddOwnProductRejected(t *testing.T) {
	uc, _ := newFavoriteFixture()

	_, err := uc.AddFavorite(context.Background(), Session{UserID: "seller-1"}, "prod-1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestToggleFavoriteFlipsState(t *testing.T) {
	uc, _ := newFavoriteFixture()
	ctx := context.Background()
	session := Session{UserID: "buyer-1"}

	favorited, err := uc.ToggleFavorite(ctx, session, "prod-1")
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = uc.ToggleFavorite(ctx, session, "prod-1")
	require.NoError(t, err)
	assert.False(t, favorited)

	state, err := uc.IsFavorited(ctx, session, "prod-1")
	require.NoError(t, err)
	assert.False(t, state)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	uc, _ := newFavoriteFixture()

	_, err := uc.AddFavorite(context.Background(), Session{UserID: "buyer-1"}, "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
