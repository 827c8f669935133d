package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned by conditional status updates when the
	// record was no longer pending (lost a concurrent decision race).
	ErrNotPending = errors.New("request is no longer pending")
	// ErrPendingCancellationExists is returned by the conditional
	// cancellation insert when the tenant already has a pending request.
	ErrPendingCancellationExists = errors.New("a pending cancellation request already exists for this tenant")
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Tenant, error)
	// GetExpiry returns the tenant's expiration timestamp, nil when no
	// expiry is enforced.
	GetExpiry(ctx context.Context, id uuid.UUID) (*time.Time, error)
	// SetExpiry sets the expiration timestamp, scoped by tenant id.
	SetExpiry(ctx context.Context, id uuid.UUID, expiresOn time.Time) error
	// Revoke marks an active tenant revoked; ErrNotFound when no active
	// tenant matched.
	Revoke(ctx context.Context, id uuid.UUID) error
}

type ProfileRepository interface {
	// Create inserts the default profile seeded alongside a freshly
	// provisioned identity: no tenant, pending approval set.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByIdentity(ctx context.Context, identityID string) (*domain.Profile, error)
	// BindToTenant rebinds the identity's profile to a tenant: sets tenant
	// id, role, names, and clears the pending-approval flag.
	BindToTenant(ctx context.Context, identityID string, tenantID uuid.UUID, role domain.ProfileRole, firstName, lastName string) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Profile, error)
}

type RegistrationRequestRepository interface {
	Create(ctx context.Context, req *domain.RegistrationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RegistrationRequest, error)
	ListByStatus(ctx context.Context, status domain.RegistrationRequestStatus) ([]domain.RegistrationRequest, error)
	// Finalize moves a pending request to a terminal status with a
	// compare-and-swap on status; ErrNotPending when the request was
	// already decided. tenantID and identityID are recorded on approval
	// and nil on rejection.
	Finalize(ctx context.Context, id uuid.UUID, status domain.RegistrationRequestStatus, tenantID *uuid.UUID, identityID *string, decidedOn time.Time) error
}

type CancellationRequestRepository interface {
	// Create inserts the request only when the tenant has no pending
	// request; ErrPendingCancellationExists otherwise.
	Create(ctx context.Context, req *domain.CancellationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CancellationRequest, error)
	GetPendingByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.CancellationRequest, error)
	ListByStatus(ctx context.Context, status domain.CancellationRequestStatus) ([]domain.CancellationRequest, error)
	// Decide moves a pending request to a terminal status with a
	// compare-and-swap on status; ErrNotPending when already decided.
	Decide(ctx context.Context, id uuid.UUID, status domain.CancellationRequestStatus, updatedOn time.Time) error
}

type ReconciliationRepository interface {
	Create(ctx context.Context, entry *domain.ReconciliationEntry) error
	ListOpen(ctx context.Context) ([]domain.ReconciliationEntry, error)
	Resolve(ctx context.Context, id int32) error
}
