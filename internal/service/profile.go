package service

import (
	"context"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Profile, error) {
	return s.profileRepo.ListByTenant(ctx, tenantID)
}
