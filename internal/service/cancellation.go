package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/license"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository"
)

type cancellationService struct {
	cancelRepo repository.CancellationRequestRepository
	tenantRepo repository.TenantRepository
	emailSvc   EmailService
	now        func() time.Time
}

func NewCancellationService(cancelRepo repository.CancellationRequestRepository, tenantRepo repository.TenantRepository, emailSvc EmailService) CancellationService {
	return &cancellationService{
		cancelRepo: cancelRepo,
		tenantRepo: tenantRepo,
		emailSvc:   emailSvc,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit files a cancellation request for the tenant. The workflow checks
// for an existing pending request first; the conditional insert in the
// store closes the race two concurrent submits would otherwise win
// together.
func (s *cancellationService) Submit(ctx context.Context, tenantID uuid.UUID, requesterID, notes string) (*domain.CancellationRequest, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	existing, err := s.cancelRepo.GetPendingByTenant(ctx, tenantID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for pending request: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrPendingCancellationExists
	}

	req := &domain.CancellationRequest{
		TenantID:    tenantID,
		RequesterID: requesterID,
		Notes:       notes,
	}
	if err := s.cancelRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Cancellation request submitted", "request_id", req.ID, "tenant_id", tenantID, "requester", requesterID)
	return req, nil
}

// Review decides a pending cancellation request. Approving with
// expireLicense additionally sets the tenant's expiry to now, which the
// license evaluator reads as inactive from then on. Rejection never
// touches the tenant.
func (s *cancellationService) Review(ctx context.Context, actorID string, requestID uuid.UUID, approve bool, expireLicense bool) error {
	req, err := s.cancelRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get cancellation request: %w", err)
	}
	if req.Status != domain.CancellationRequestStatusPending {
		return ErrRequestNotPending
	}

	decision := domain.CancellationRequestStatusRejected
	if approve {
		decision = domain.CancellationRequestStatusApproved
	}

	if err := s.cancelRepo.Decide(ctx, requestID, decision, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return ErrRequestNotPending
		}
		return fmt.Errorf("failed to decide cancellation request: %w", err)
	}

	logger.Info("Cancellation request reviewed",
		"request_id", requestID, "tenant_id", req.TenantID, "decision", string(decision), "actor", actorID)

	if tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID); err != nil {
		logger.Error("Failed to load tenant for cancellation notice", "tenant_id", req.TenantID, "error", err)
	} else if err := s.emailSvc.SendCancellationDecision(ctx, tenant.ContactEmail, tenant.Name, approve); err != nil {
		logger.Error("Failed to send cancellation decision notice", "request_id", requestID, "error", err)
	}

	if approve && expireLicense {
		if err := s.tenantRepo.SetExpiry(ctx, req.TenantID, s.now()); err != nil {
			// The request is already approved; only the cascade failed.
			return &LicenseCascadeError{RequestID: requestID, TenantID: req.TenantID, Err: err}
		}
		logger.Info("Tenant license expired on cancellation", "tenant_id", req.TenantID, "request_id", requestID)
	}

	return nil
}

// RetryLicenseExpiry re-runs the expiry cascade for an already approved
// request. Setting the expiry to now again is idempotent.
func (s *cancellationService) RetryLicenseExpiry(ctx context.Context, actorID string, requestID uuid.UUID) error {
	req, err := s.cancelRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get cancellation request: %w", err)
	}
	if req.Status != domain.CancellationRequestStatusApproved {
		return fmt.Errorf("cancellation request %s is not approved", requestID)
	}

	if err := s.tenantRepo.SetExpiry(ctx, req.TenantID, s.now()); err != nil {
		return &LicenseCascadeError{RequestID: requestID, TenantID: req.TenantID, Err: err}
	}

	logger.Info("License expiry cascade retried", "request_id", requestID, "tenant_id", req.TenantID, "actor", actorID)
	return nil
}

// ListForReview returns cancellation requests joined with their tenants
// and the tenants' derived license status. Two queries, merged in memory
// through an id-to-tenant map.
func (s *cancellationService) ListForReview(ctx context.Context, status domain.CancellationRequestStatus) ([]CancellationDetail, error) {
	reqs, err := s.cancelRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellation requests: %w", err)
	}
	if len(reqs) == 0 {
		return nil, nil
	}

	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}

	now := s.now()
	details := make([]CancellationDetail, 0, len(reqs))
	for _, req := range reqs {
		tenant, ok := byID[req.TenantID]
		if !ok {
			logger.Warn("Cancellation request references missing tenant", "request_id", req.ID, "tenant_id", req.TenantID)
			continue
		}
		details = append(details, CancellationDetail{
			Request: req,
			Tenant:  tenant,
			License: license.Evaluate(tenant.ExpiresOn, now),
		})
	}
	return details, nil
}
