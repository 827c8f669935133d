package domain

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusActive  TenantStatus = "ACTIVE"
	TenantStatusRevoked TenantStatus = "REVOKED"
)

// Tenant is an isolated customer organization. ExpiresOn is nil when the
// tenant has no enforced license expiry.
type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	ContactEmail string       `json:"contact_email"`
	Status       TenantStatus `json:"status"`
	RegisteredOn time.Time    `json:"registered_on"`
	ExpiresOn    *time.Time   `json:"expires_on,omitempty"`
	CreatedOn    time.Time    `json:"created_on"`
}
