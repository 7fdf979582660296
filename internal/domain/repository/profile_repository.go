package repository

import (
	"context"

	"worldmart/internal/domain/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
}
