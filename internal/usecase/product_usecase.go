package usecase

import (
	"context"
	"log"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	profileRepo  repository.ProfileRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	profileRepo repository.ProfileRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		profileRepo:  profileRepo,
	}
}

type ProductResponse struct {
	*entity.Product
	Seller   *entity.Profile  `json:"seller,omitempty"`
	Category *entity.Category `json:"category,omitempty"`
}

type ListProductsInput struct {
	CategoryID string
	Condition  string
	Location   string
	Query      string
	SellerID   string
	Limit      int
	Offset     int
}

func (u *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, int64, error) {
	if input.Condition != "" && input.Condition != "new" && input.Condition != "second-hand" {
		return nil, 0, errors.BadRequest("Condition must be 'new' or 'second-hand'", nil)
	}

	return u.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: input.CategoryID,
		Condition:  input.Condition,
		Location:   input.Location,
		Query:      input.Query,
		SellerID:   input.SellerID,
	}, input.Limit, input.Offset)
}

func (u *ProductUseCase) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := &ProductResponse{Product: product}

	if seller, err := u.profileRepo.GetByID(ctx, product.SellerID); err == nil {
		response.Seller = seller
	} else {
		log.Printf("GetProduct Warning: Seller %s not found for product %s: %v", product.SellerID, id, err)
	}

	if product.CategoryID != "" {
		if category, err := u.categoryRepo.GetByID(ctx, product.CategoryID); err == nil {
			response.Category = category
		} else {
			log.Printf("GetProduct Warning: Category %s not found for product %s: %v", product.CategoryID, id, err)
		}
	}

	// View tracking is best effort.
	if err := u.productRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("GetProduct Warning: Failed to increment views for product %s: %v", id, err)
	}

	return response, nil
}

func (u *ProductUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return u.categoryRepo.List(ctx)
}

type ProductInput struct {
	CategoryID   string
	Title        string
	Description  string
	Price        float64
	Currency     string
	Images       []string
	Condition    string
	Location     string
	Status       string
	ExternalLink string
}

func (u *ProductUseCase) CreateProduct(ctx context.Context, session Session, input ProductInput) (*entity.Product, error) {
	if input.CategoryID != "" {
		if _, err := u.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &entity.Product{
		SellerID:     session.UserID,
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Currency:     input.Currency,
		Images:       input.Images,
		Condition:    input.Condition,
		Location:     input.Location,
		Status:       input.Status,
		ExternalLink: input.ExternalLink,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		log.Printf("CreateProduct Error: Failed to create product for seller %s: %v", session.UserID, err)
		return nil, err
	}

	return product, nil
}

// UpdateProduct replaces a listing's editable fields. Only the seller who
// owns the listing may change it; ownership, creation time and view count
// never change.
func (u *ProductUseCase) UpdateProduct(ctx context.Context, session Session, id string, input ProductInput) (*entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SellerID != session.UserID {
		log.Printf("UpdateProduct Error: User %s does not own product %s", session.UserID, id)
		return nil, errors.Forbidden("You can only update your own products", nil)
	}

	if input.CategoryID != "" && input.CategoryID != product.CategoryID {
		if _, err := u.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product.CategoryID = input.CategoryID
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.Currency = input.Currency
	product.Images = input.Images
	product.Condition = input.Condition
	product.Location = input.Location
	product.Status = input.Status
	product.ExternalLink = input.ExternalLink

	if err := u.productRepo.Update(ctx, product); err != nil {
		log.Printf("UpdateProduct Error: Failed to update product %s: %v", id, err)
		return nil, err
	}

	return product, nil
}

func (u *ProductUseCase) DeleteProduct(ctx context.Context, session Session, id string) error {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.SellerID != session.UserID {
		log.Printf("DeleteProduct Error: User %s does not own product %s", session.UserID, id)
		return errors.Forbidden("You can only delete your own products", nil)
	}

	return u.productRepo.Delete(ctx, id)
}

// ListMyProducts returns the caller's own listings in every status, unlike
// the public browse which only shows active ones.
func (u *ProductUseCase) ListMyProducts(ctx context.Context, session Session) ([]*entity.Product, error) {
	return u.productRepo.ListBySeller(ctx, session.UserID)
}
