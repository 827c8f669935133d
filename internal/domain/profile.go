package domain

import "github.com/google/uuid"

type ProfileRole string

const (
	ProfileRoleAdmin      ProfileRole = "ADMIN"
	ProfileRoleEmployee   ProfileRole = "EMPLOYEE"
	ProfileRoleForeman    ProfileRole = "FOREMAN"
	ProfileRoleSuperAdmin ProfileRole = "SUPER_ADMIN"
)

// Profile is the tenant-scoped role record bound to a login credential.
// Exactly one profile exists per identity. A freshly provisioned identity
// starts with no tenant and PendingApproval set; the approval saga rebinds it.
type Profile struct {
	ID              uuid.UUID   `json:"id"`
	IdentityID      string      `json:"identity_id"`
	TenantID        *uuid.UUID  `json:"tenant_id,omitempty"`
	Role            ProfileRole `json:"role"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	PendingApproval bool        `json:"pending_approval"`
}
