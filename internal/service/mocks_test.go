package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/identity"
)

// MockTenantRepo
type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}
func (m *MockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTenantRepo) List(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) GetExpiry(ctx context.Context, id uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
func (m *MockTenantRepo) SetExpiry(ctx context.Context, id uuid.UUID, expiresOn time.Time) error {
	args := m.Called(ctx, id, expiresOn)
	return args.Error(0)
}
func (m *MockTenantRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByIdentity(ctx context.Context, identityID string) (*domain.Profile, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) BindToTenant(ctx context.Context, identityID string, tenantID uuid.UUID, role domain.ProfileRole, firstName, lastName string) error {
	args := m.Called(ctx, identityID, tenantID, role, firstName, lastName)
	return args.Error(0)
}
func (m *MockProfileRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Profile, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

// MockRegistrationRequestRepo
type MockRegistrationRequestRepo struct {
	mock.Mock
}

func (m *MockRegistrationRequestRepo) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRegistrationRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RegistrationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationRequest), args.Error(1)
}
func (m *MockRegistrationRequestRepo) ListByStatus(ctx context.Context, status domain.RegistrationRequestStatus) ([]domain.RegistrationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistrationRequest), args.Error(1)
}
func (m *MockRegistrationRequestRepo) Finalize(ctx context.Context, id uuid.UUID, status domain.RegistrationRequestStatus, tenantID *uuid.UUID, identityID *string, decidedOn time.Time) error {
	args := m.Called(ctx, id, status, tenantID, identityID, decidedOn)
	return args.Error(0)
}

// MockCancellationRequestRepo
type MockCancellationRequestRepo struct {
	mock.Mock
}

func (m *MockCancellationRequestRepo) Create(ctx context.Context, req *domain.CancellationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockCancellationRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CancellationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationRequest), args.Error(1)
}
func (m *MockCancellationRequestRepo) GetPendingByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.CancellationRequest, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationRequest), args.Error(1)
}
func (m *MockCancellationRequestRepo) ListByStatus(ctx context.Context, status domain.CancellationRequestStatus) ([]domain.CancellationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CancellationRequest), args.Error(1)
}
func (m *MockCancellationRequestRepo) Decide(ctx context.Context, id uuid.UUID, status domain.CancellationRequestStatus, updatedOn time.Time) error {
	args := m.Called(ctx, id, status, updatedOn)
	return args.Error(0)
}

// MockReconciliationRepo
type MockReconciliationRepo struct {
	mock.Mock
}

func (m *MockReconciliationRepo) Create(ctx context.Context, entry *domain.ReconciliationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockReconciliationRepo) ListOpen(ctx context.Context) ([]domain.ReconciliationEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationEntry), args.Error(1)
}
func (m *MockReconciliationRepo) Resolve(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProvisioner
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) CreateCredential(ctx context.Context, email, password string, meta identity.Metadata) (string, error) {
	args := m.Called(ctx, email, password, meta)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationApproved(ctx context.Context, email, firstName, companyName, tempPassword string) error {
	args := m.Called(ctx, email, firstName, companyName, tempPassword)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationRejected(ctx context.Context, email, firstName, companyName string) error {
	args := m.Called(ctx, email, firstName, companyName)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationDecision(ctx context.Context, email, companyName string, approved bool) error {
	args := m.Called(ctx, email, companyName, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendLicenseExpiryReminder(ctx context.Context, email, companyName string, daysLeft int) error {
	args := m.Called(ctx, email, companyName, daysLeft)
	return args.Error(0)
}
func (m *MockEmailService) SendReconciliationReport(ctx context.Context, opsEmail string, entries []domain.ReconciliationEntry) error {
	args := m.Called(ctx, opsEmail, entries)
	return args.Error(0)
}
