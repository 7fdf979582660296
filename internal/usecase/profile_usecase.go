package usecase

import (
	"context"

	"worldmart/internal/domain/entity"
	"worldmart/internal/domain/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

func (u *ProfileUseCase) GetPublicProfile(ctx context.Context, id string) (*entity.Profile, error) {
	return u.profileRepo.GetByID(ctx, id)
}
