package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmart/internal/domain/entity"
	"worldmart/pkg/errors"
)

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return category, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, category := range r.categories {
		result = append(result, category)
	}
	return result, nil
}

func newProductFixture() (*ProductUseCase, *fakeProductRepo) {
	prodRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SellerID: "seller-1", CategoryID: "cat-1", Title: "Mechanical Keyboard", Price: 45, Currency: "WLD", Condition: "second-hand", Status: "active"},
	}}
	catRepo := &fakeCategoryRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Electronics", Slug: "electronics"},
	}}
	profRepo := &fakeProfileRepo{profiles: map[string]*entity.Profile{
		"seller-1": {ID: "seller-1", Username: "alice"},
	}}
	return NewProductUseCase(prodRepo, catRepo, profRepo), prodRepo
}

func TestCreateProductOwnedByCaller(t *testing.T) {
	uc, repo := newProductFixture()

	product, err := uc.CreateProduct(context.Background(), Session{UserID: "seller-2"}, ProductInput{
		CategoryID: "cat-1",
		Title:      "Desk Lamp",
		Price:      12,
		Currency:   "USD",
		Condition:  "new",
		Status:     "active",
	})
	require.NoError(t, err)

	assert.Equal(t, "seller-2", product.SellerID)
	assert.NotEmpty(t, product.ID)
	assert.Contains(t, repo.products, product.ID)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	uc, _ := newProductFixture()

	_, err := uc.CreateProduct(context.Background(), Session{UserID: "seller-2"}, ProductInput{
		CategoryID: "ghost",
		Title:      "Desk Lamp",
		Price:      12,
		Currency:   "USD",
		Condition:  "new",
		Status:     "active",
	})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUpdateProductByOwner(t *testing.T) {
	uc, repo := newProductFixture()

	product, err := uc.UpdateProduct(context.Background(), Session{UserID: "seller-1"}, "prod-1", ProductInput{
		CategoryID: "cat-1",
		Title:      "Mechanical Keyboard (mint)",
		Price:      40,
		Currency:   "WLD",
		Condition:  "second-hand",
		Status:     "active",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mechanical Keyboard (mint)", product.Title)
	assert.Equal(t, float64(40), product.Price)
	assert.Equal(t, "seller-1", product.SellerID)
	assert.Equal(t, "Mechanical Keyboard (mint)", repo.products["prod-1"].Title)
}

func TestUpdateProductByNonOwnerForbidden(t *testing.T) {
	uc, repo := newProductFixture()

	_, err := uc.UpdateProduct(context.Background(), Session{UserID: "seller-2"}, "prod-1", ProductInput{
		Title:     "Hijacked",
		Price:     1,
		Currency:  "WLD",
		Condition: "new",
		Status:    "active",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, "Mechanical Keyboard", repo.products["prod-1"].Title)
}

func TestDeleteProductByOwner(t *testing.T) {
	uc, repo := newProductFixture()

	err := uc.DeleteProduct(context.Background(), Session{UserID: "seller-1"}, "prod-1")
	require.NoError(t, err)
	assert.NotContains(t, repo.products, "prod-1")
}

func TestDeleteProductByNonOwnerForbidden(t *testing.T) {
	uc, repo := newProductFixture()

	err := uc.DeleteProduct(context.Background(), Session{UserID: "seller-2"}, "prod-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Contains(t, repo.products, "prod-1")
}

func TestListMyProductsIncludesEveryStatus(t *testing.T) {
	uc, repo := newProductFixture()
	repo.products["prod-2"] = &entity.Product{ID: "prod-2", SellerID: "seller-1", Title: "Old Monitor", Status: "sold"}
	repo.products["prod-3"] = &entity.Product{ID: "prod-3", SellerID: "seller-2", Title: "Chair", Status: "active"}

	products, err := uc.ListMyProducts(context.Background(), Session{UserID: "seller-1"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, product := range products {
		assert.Equal(t, "seller-1", product.SellerID)
	}
}
