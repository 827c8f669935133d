package service

import (
	"context"
	"fmt"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository"
)

type reconciliationService struct {
	reconRepo repository.ReconciliationRepository
}

func NewReconciliationService(reconRepo repository.ReconciliationRepository) ReconciliationService {
	return &reconciliationService{reconRepo: reconRepo}
}

func (s *reconciliationService) ListOpen(ctx context.Context) ([]domain.ReconciliationEntry, error) {
	return s.reconRepo.ListOpen(ctx)
}

func (s *reconciliationService) Resolve(ctx context.Context, actorID string, entryID int32) error {
	if err := s.reconRepo.Resolve(ctx, entryID); err != nil {
		return fmt.Errorf("failed to resolve reconciliation entry: %w", err)
	}
	logger.Info("Reconciliation entry resolved", "entry_id", entryID, "actor", actorID)
	return nil
}
