package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrRequestNotPending is returned when acting on a registration or
	// cancellation request that has already been decided.
	ErrRequestNotPending = errors.New("request has already been decided")
	// ErrInvalidRenewal is returned when a renewal would not move the
	// expiration timestamp forward.
	ErrInvalidRenewal = errors.New("renewal must move the expiration forward")
)

// SagaStage identifies which provisioning step failed.
type SagaStage string

const (
	StageTenantCreate    SagaStage = "TENANT_CREATE"
	StageIdentityCreate  SagaStage = "IDENTITY_CREATE"
	StageProfileBind     SagaStage = "PROFILE_BIND"
	StageRequestFinalize SagaStage = "REQUEST_FINALIZE"
)

// SagaError is the typed failure surfaced by the approval saga. Err holds
// the diagnostic for support; Message is what operators see.
type SagaError struct {
	Stage SagaStage
	Err   error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("approval failed at %s: %v", e.Stage, e.Err)
}

func (e *SagaError) Unwrap() error { return e.Err }

// Message maps the failed stage to a short operator-facing explanation.
func (e *SagaError) Message() string {
	switch e.Stage {
	case StageTenantCreate:
		return "Could not create the company record. Nothing was provisioned; the request is still pending."
	case StageIdentityCreate:
		return "Could not create the administrator credential. The company record was rolled back; the request is still pending."
	case StageProfileBind:
		return "Could not bind the administrator profile. The company record was rolled back; the credential was kept and reported for reconciliation."
	case StageRequestFinalize:
		return "The company and administrator were provisioned, but the request could not be marked approved. Manual reconciliation is required."
	default:
		return "Approval failed."
	}
}

// LicenseCascadeError reports a cancellation approval whose license-expiry
// cascade failed after the request was already marked approved. Retrying
// the expiry step alone is idempotent and safe.
type LicenseCascadeError struct {
	RequestID uuid.UUID
	TenantID  uuid.UUID
	Err       error
}

func (e *LicenseCascadeError) Error() string {
	return fmt.Sprintf("cancellation %s approved but license expiry for tenant %s failed: %v", e.RequestID, e.TenantID, e.Err)
}

func (e *LicenseCascadeError) Unwrap() error { return e.Err }
