package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
	"worldmart/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{client: client}
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection("categories").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.client.Collection("categories").OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}

	var categories []*entity.Category
	for _, doc := range docs {
		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			log.Printf("Error parsing category %s: %v", doc.Ref.ID, err)
			continue
		}
		categories = append(categories, &category)
	}

	return categories, nil
}
