package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

func favoriteDocID(userID, productID string) string {
	return fmt.Sprintf("%s_%s", userID, productID)
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	favorite := entity.Favorite{
		ID:        favoriteDocID(userID, productID),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}

	_, err := r.client.Collection("favorites").Doc(favorite.ID).Create(ctx, favorite)
	if err != nil {
		if isAlreadyExists(err) {
			return nil, errors.Conflict("Product already in favorites", err)
		}
		return nil, errors.Internal("Failed to add favorite", err)
	}

	return &favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	docRef := r.client.Collection("favorites").Doc(favoriteDocID(userID, productID))

	if _, err := docRef.Get(ctx); err != nil {
		if isNotFound(err) {
			return errors.NotFound("Favorite", err)
		}
		return errors.Internal("Failed to check favorite", err)
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) IsFavorited(ctx context.Context, userID, productID string) (bool, error) {
	doc, err := r.client.Collection("favorites").Doc(favoriteDocID(userID, productID)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithProduct, int64, error) {
	allDocs, err := r.client.Collection("favorites").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to get favorites", err)
	}

	var favorites []entity.Favorite
	productIDs := make([]string, 0, len(allDocs))
	for _, doc := range allDocs {
		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			log.Printf("Error parsing favorite %s: %v", doc.Ref.ID, err)
			continue
		}
		favorites = append(favorites, favorite)
		productIDs = append(productIDs, favorite.ProductID)
	}

	if len(productIDs) == 0 {
		return []entity.FavoriteWithProduct{}, 0, nil
	}

	products, err := r.fetchProducts(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}

	// Keep only favorites whose product is still active, then paginate.
	var items []entity.FavoriteWithProduct
	var activeCount int64
	for _, favorite := range favorites {
		product, exists := products[favorite.ProductID]
		if !exists || product.Status != "active" {
			continue
		}
		activeCount++

		if int(activeCount) > offset && (limit <= 0 || len(items) < limit) {
			items = append(items, entity.FavoriteWithProduct{
				ID:        favorite.ID,
				UserID:    favorite.UserID,
				ProductID: favorite.ProductID,
				Product:   product,
				CreatedAt: favorite.CreatedAt,
			})
		}
	}

	return items, activeCount, nil
}

func (r *firestoreFavoriteRepository) Count(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("favorites").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}

	return int64(len(docs)), nil
}

// fetchProducts batch-reads products, 30 refs per call (Firestore limit).
func (r *firestoreFavoriteRepository) fetchProducts(ctx context.Context, productIDs []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product)
	for i := 0; i < len(productIDs); i += 30 {
		end := i + 30
		if end > len(productIDs) {
			end = len(productIDs)
		}

		batchIDs := productIDs[i:end]
		docRefs := make([]*firestore.DocumentRef, len(batchIDs))
		for j, id := range batchIDs {
			docRefs[j] = r.client.Collection("products").Doc(id)
		}

		docs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			log.Printf("Error batch fetching products: %v", err)
			continue
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				continue
			}
			products[doc.Ref.ID] = &product
		}
	}

	return products, nil
}
