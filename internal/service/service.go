package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/license"
)

// RegistrationService decides registration requests. Approve runs the
// provisioning saga; Reject is a single conditional update.
type RegistrationService interface {
	// SubmitRequest files a new registration request from a prospective
	// tenant. The request enters the queue pending.
	SubmitRequest(ctx context.Context, req *domain.RegistrationRequest) error
	Approve(ctx context.Context, actorID string, requestID uuid.UUID, registeredOn time.Time, expiresOn *time.Time) (*domain.Tenant, string, error)
	Reject(ctx context.Context, actorID string, requestID uuid.UUID) error
	ListPending(ctx context.Context) ([]domain.RegistrationRequest, error)
}

// CancellationDetail joins a cancellation request with its tenant and the
// tenant's derived license status for operator review.
type CancellationDetail struct {
	Request domain.CancellationRequest `json:"request"`
	Tenant  domain.Tenant              `json:"tenant"`
	License license.Status             `json:"license"`
}

type CancellationService interface {
	Submit(ctx context.Context, tenantID uuid.UUID, requesterID, notes string) (*domain.CancellationRequest, error)
	Review(ctx context.Context, actorID string, requestID uuid.UUID, approve bool, expireLicense bool) error
	// RetryLicenseExpiry re-runs the expiry cascade for an approved
	// request whose first attempt failed. Idempotent.
	RetryLicenseExpiry(ctx context.Context, actorID string, requestID uuid.UUID) error
	ListForReview(ctx context.Context, status domain.CancellationRequestStatus) ([]CancellationDetail, error)
}

type LicenseService interface {
	Status(ctx context.Context, tenantID uuid.UUID) (license.Status, error)
	ExpireNow(ctx context.Context, tenantID uuid.UUID) error
	Renew(ctx context.Context, actorID string, tenantID uuid.UUID, newExpiry time.Time) error
	RevokeTenant(ctx context.Context, actorID string, tenantID uuid.UUID) error
}

// ProfileService exposes tenant-scoped member listings for the console.
type ProfileService interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Profile, error)
}

type ReconciliationService interface {
	ListOpen(ctx context.Context) ([]domain.ReconciliationEntry, error)
	Resolve(ctx context.Context, actorID string, entryID int32) error
}

type EmailService interface {
	SendRegistrationApproved(ctx context.Context, email, firstName, companyName, tempPassword string) error
	SendRegistrationRejected(ctx context.Context, email, firstName, companyName string) error
	SendCancellationDecision(ctx context.Context, email, companyName string, approved bool) error
	SendLicenseExpiryReminder(ctx context.Context, email, companyName string, daysLeft int) error
	SendReconciliationReport(ctx context.Context, opsEmail string, entries []domain.ReconciliationEntry) error
}
