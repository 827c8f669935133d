package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReconciliationKind string

const (
	// ReconciliationKindOrphanedIdentity marks a credential that was
	// provisioned but whose profile was never bound to a tenant.
	ReconciliationKindOrphanedIdentity ReconciliationKind = "ORPHANED_IDENTITY"
	// ReconciliationKindUnfinalizedRequest marks a registration request
	// whose tenant and identity exist but whose status update failed.
	ReconciliationKindUnfinalizedRequest ReconciliationKind = "UNFINALIZED_REQUEST"
)

// ReconciliationEntry records an inconsistency left behind by a partial
// provisioning failure. Entries are surfaced to operators for manual
// cleanup; the saga never deletes a possibly valid credential on its own.
type ReconciliationEntry struct {
	ID         int32              `json:"id"`
	Kind       ReconciliationKind `json:"kind"`
	RequestID  uuid.UUID          `json:"request_id"`
	IdentityID string             `json:"identity_id"`
	Email      string             `json:"email"`
	Diagnostic string             `json:"diagnostic"`
	Resolved   bool               `json:"resolved"`
	CreatedOn  time.Time          `json:"created_on"`
}
