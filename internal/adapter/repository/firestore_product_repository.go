package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
	"worldmart/pkg/logger"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{client: client}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product); err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	if _, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product); err != nil {
		if isNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection("products").Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	docs, err := r.client.Collection("products").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing seller %s products: %v", sellerID, err)
		return nil, errors.Internal("Failed to list seller products", err)
	}

	var products []*entity.Product
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			logger.Warn("Error parsing product data %s: %v", doc.Ref.ID, err)
			continue
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Where("status", "==", "active")

	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.Condition != "" {
		query = query.Where("condition", "==", filter.Condition)
	}
	if filter.Location != "" {
		query = query.Where("location", "==", filter.Location)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}

	allDocs, err := query.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing products: %v", err)
		return nil, 0, errors.Internal("Failed to list products", err)
	}

	// Text search has no native support; match titles in memory like the
	// rest of the in-memory pagination below.
	var matched []*entity.Product
	queryLower := strings.ToLower(filter.Query)
	for _, doc := range allDocs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			logger.Warn("Error parsing product data %s: %v", doc.Ref.ID, err)
			continue
		}
		if queryLower != "" && !strings.Contains(strings.ToLower(product.Title), queryLower) {
			continue
		}
		matched = append(matched, &product)
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreProductRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to increment product views", err)
	}

	return nil
}
