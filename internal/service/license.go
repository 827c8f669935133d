package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/license"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository"
)

type licenseService struct {
	tenantRepo repository.TenantRepository
	now        func() time.Time
}

func NewLicenseService(tenantRepo repository.TenantRepository) LicenseService {
	return &licenseService{
		tenantRepo: tenantRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Status fetches the tenant's expiry fresh and derives the license status.
// The result is never persisted.
func (s *licenseService) Status(ctx context.Context, tenantID uuid.UUID) (license.Status, error) {
	expiresOn, err := s.tenantRepo.GetExpiry(ctx, tenantID)
	if err != nil {
		return license.Status{}, fmt.Errorf("failed to get tenant expiry: %w", err)
	}
	return license.Evaluate(expiresOn, s.now()), nil
}

func (s *licenseService) ExpireNow(ctx context.Context, tenantID uuid.UUID) error {
	if err := s.tenantRepo.SetExpiry(ctx, tenantID, s.now()); err != nil {
		return fmt.Errorf("failed to expire tenant license: %w", err)
	}
	return nil
}

// Renew moves the expiration forward. This is the only path that resets a
// past expiry; an expired license never reactivates on its own.
func (s *licenseService) Renew(ctx context.Context, actorID string, tenantID uuid.UUID, newExpiry time.Time) error {
	now := s.now()
	if !newExpiry.After(now) {
		return ErrInvalidRenewal
	}

	current, err := s.tenantRepo.GetExpiry(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get tenant expiry: %w", err)
	}
	if current != nil && newExpiry.Before(*current) {
		return ErrInvalidRenewal
	}

	if err := s.tenantRepo.SetExpiry(ctx, tenantID, newExpiry); err != nil {
		return fmt.Errorf("failed to renew tenant license: %w", err)
	}

	logger.Info("Tenant license renewed", "tenant_id", tenantID, "expires_on", newExpiry, "actor", actorID)
	return nil
}

func (s *licenseService) RevokeTenant(ctx context.Context, actorID string, tenantID uuid.UUID) error {
	if err := s.tenantRepo.Revoke(ctx, tenantID); err != nil {
		return fmt.Errorf("failed to revoke tenant: %w", err)
	}
	logger.Info("Tenant revoked", "tenant_id", tenantID, "actor", actorID)
	return nil
}
