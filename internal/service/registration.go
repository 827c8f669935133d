package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/identity"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository"
	"tenantops-backend/internal/security"
)

type registrationService struct {
	tenantRepo  repository.TenantRepository
	profileRepo repository.ProfileRepository
	reqRepo     repository.RegistrationRequestRepository
	reconRepo   repository.ReconciliationRepository
	provisioner identity.Provisioner
	emailSvc    EmailService
	now         func() time.Time
}

func NewRegistrationService(
	tenantRepo repository.TenantRepository,
	profileRepo repository.ProfileRepository,
	reqRepo repository.RegistrationRequestRepository,
	reconRepo repository.ReconciliationRepository,
	provisioner identity.Provisioner,
	emailSvc EmailService,
) RegistrationService {
	return &registrationService{
		tenantRepo:  tenantRepo,
		profileRepo: profileRepo,
		reqRepo:     reqRepo,
		reconRepo:   reconRepo,
		provisioner: provisioner,
		emailSvc:    emailSvc,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// approvalState is threaded through the saga steps. Each step reads the
// outputs of the steps before it and records its own.
type approvalState struct {
	request      *domain.RegistrationRequest
	registeredOn time.Time
	expiresOn    *time.Time
	tenant       *domain.Tenant
	identityID   string
	tempPassword string
}

// approvalStep pairs a provisioning step with the cleanup that runs when
// that step fails. Steps after the first do not undo each other
// generically; the cleanup encodes exactly what the failure leaves behind:
//
//	tenant create     -> nothing to clean up
//	identity create   -> delete the tenant
//	profile bind      -> delete the tenant, report the orphaned identity
//	request finalize  -> leave everything standing, report the request
type approvalStep struct {
	stage     SagaStage
	run       func(ctx context.Context, st *approvalState) error
	onFailure func(ctx context.Context, st *approvalState)
}

func (s *registrationService) approvalSteps() []approvalStep {
	return []approvalStep{
		{
			stage: StageTenantCreate,
			run: func(ctx context.Context, st *approvalState) error {
				tenant := &domain.Tenant{
					Name:         st.request.CompanyName,
					ContactEmail: st.request.CompanyEmail,
					Status:       domain.TenantStatusActive,
					RegisteredOn: st.registeredOn,
					ExpiresOn:    st.expiresOn,
				}
				if err := s.tenantRepo.Create(ctx, tenant); err != nil {
					return err
				}
				st.tenant = tenant
				return nil
			},
		},
		{
			stage: StageIdentityCreate,
			run: func(ctx context.Context, st *approvalState) error {
				password, err := security.GenerateTempPassword(16)
				if err != nil {
					return err
				}
				st.tempPassword = password

				id, err := s.provisioner.CreateCredential(ctx, st.request.AdminEmail, password, identity.Metadata{
					FirstName: st.request.AdminFirstName,
					LastName:  st.request.AdminLastName,
				})
				if err != nil {
					return err
				}
				st.identityID = id
				return nil
			},
			onFailure: func(ctx context.Context, st *approvalState) {
				s.deleteTenant(ctx, st)
			},
		},
		{
			stage: StageProfileBind,
			run: func(ctx context.Context, st *approvalState) error {
				return s.profileRepo.BindToTenant(ctx, st.identityID, st.tenant.ID,
					domain.ProfileRoleAdmin, st.request.AdminFirstName, st.request.AdminLastName)
			},
			onFailure: func(ctx context.Context, st *approvalState) {
				s.deleteTenant(ctx, st)
				// The credential may be valid; never delete it here. Report
				// it and leave the decision to an operator.
				s.report(ctx, &domain.ReconciliationEntry{
					Kind:       domain.ReconciliationKindOrphanedIdentity,
					RequestID:  st.request.ID,
					IdentityID: st.identityID,
					Email:      st.request.AdminEmail,
					Diagnostic: "profile bind failed after identity creation",
				})
			},
		},
		{
			stage: StageRequestFinalize,
			run: func(ctx context.Context, st *approvalState) error {
				return s.reqRepo.Finalize(ctx, st.request.ID,
					domain.RegistrationRequestStatusApproved,
					&st.tenant.ID, &st.identityID, s.now())
			},
			onFailure: func(ctx context.Context, st *approvalState) {
				// The tenant and identity are real and usable; only the
				// request bookkeeping is inconsistent.
				s.report(ctx, &domain.ReconciliationEntry{
					Kind:       domain.ReconciliationKindUnfinalizedRequest,
					RequestID:  st.request.ID,
					IdentityID: st.identityID,
					Email:      st.request.AdminEmail,
					Diagnostic: fmt.Sprintf("tenant %s and identity provisioned but request not finalized", st.tenant.ID),
				})
			},
		},
	}
}

func (s *registrationService) SubmitRequest(ctx context.Context, req *domain.RegistrationRequest) error {
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return fmt.Errorf("failed to create registration request: %w", err)
	}
	logger.Info("Registration request submitted",
		"request_id", req.ID, "company", req.CompanyName, "admin_email", req.AdminEmail)
	return nil
}

// Approve provisions a tenant from a pending registration request. On full
// success exactly one tenant and one administrator identity exist and the
// request is terminal; on a compensated failure neither remains.
func (s *registrationService) Approve(ctx context.Context, actorID string, requestID uuid.UUID, registeredOn time.Time, expiresOn *time.Time) (*domain.Tenant, string, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get registration request: %w", err)
	}
	if req.Status != domain.RegistrationRequestStatusPending {
		return nil, "", ErrRequestNotPending
	}

	st := &approvalState{
		request:      req,
		registeredOn: registeredOn,
		expiresOn:    expiresOn,
	}

	for _, step := range s.approvalSteps() {
		if err := step.run(ctx, st); err != nil {
			logger.Error("Registration approval step failed",
				"request_id", requestID, "stage", string(step.stage), "actor", actorID, "error", err)
			if step.onFailure != nil {
				step.onFailure(ctx, st)
			}
			return nil, "", &SagaError{Stage: step.stage, Err: err}
		}
	}

	logger.Info("Registration request approved",
		"request_id", requestID, "tenant_id", st.tenant.ID, "identity_id", st.identityID, "actor", actorID)

	if err := s.emailSvc.SendRegistrationApproved(ctx, req.AdminEmail, req.AdminFirstName, req.CompanyName, st.tempPassword); err != nil {
		logger.Error("Failed to send approval notification", "request_id", requestID, "error", err)
	}

	return st.tenant, st.identityID, nil
}

func (s *registrationService) Reject(ctx context.Context, actorID string, requestID uuid.UUID) error {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get registration request: %w", err)
	}
	if req.Status != domain.RegistrationRequestStatusPending {
		return ErrRequestNotPending
	}

	if err := s.reqRepo.Finalize(ctx, requestID, domain.RegistrationRequestStatusRejected, nil, nil, s.now()); err != nil {
		return &SagaError{Stage: StageRequestFinalize, Err: err}
	}

	logger.Info("Registration request rejected", "request_id", requestID, "actor", actorID)

	if err := s.emailSvc.SendRegistrationRejected(ctx, req.AdminEmail, req.AdminFirstName, req.CompanyName); err != nil {
		logger.Error("Failed to send rejection notification", "request_id", requestID, "error", err)
	}

	return nil
}

func (s *registrationService) ListPending(ctx context.Context) ([]domain.RegistrationRequest, error) {
	return s.reqRepo.ListByStatus(ctx, domain.RegistrationRequestStatusPending)
}

func (s *registrationService) deleteTenant(ctx context.Context, st *approvalState) {
	if st.tenant == nil {
		return
	}
	if err := s.tenantRepo.Delete(ctx, st.tenant.ID); err != nil {
		logger.Error("Compensation failed: could not delete tenant",
			"tenant_id", st.tenant.ID, "request_id", st.request.ID, "error", err)
	}
}

func (s *registrationService) report(ctx context.Context, entry *domain.ReconciliationEntry) {
	if err := s.reconRepo.Create(ctx, entry); err != nil {
		logger.Error("Failed to record reconciliation entry",
			"kind", string(entry.Kind), "request_id", entry.RequestID, "error", err)
	}
}
