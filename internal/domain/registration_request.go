package domain

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationRequestStatus string

const (
	RegistrationRequestStatusPending  RegistrationRequestStatus = "PENDING"
	RegistrationRequestStatusApproved RegistrationRequestStatus = "APPROVED"
	RegistrationRequestStatusRejected RegistrationRequestStatus = "REJECTED"
)

// RegistrationRequest describes a prospective tenant and its intended
// administrator. Status moves PENDING -> APPROVED or PENDING -> REJECTED,
// exactly once; approved/rejected requests are never re-processed.
type RegistrationRequest struct {
	ID             uuid.UUID                 `json:"id"`
	CompanyName    string                    `json:"company_name"`
	CompanyEmail   string                    `json:"company_email"`
	CompanyPhone   string                    `json:"company_phone"`
	CompanyAddress string                    `json:"company_address"`
	AdminFirstName string                    `json:"admin_first_name"`
	AdminLastName  string                    `json:"admin_last_name"`
	AdminEmail     string                    `json:"admin_email"`
	Status         RegistrationRequestStatus `json:"status"`
	CreatedOn      time.Time                 `json:"created_on"`
	TenantID       *uuid.UUID                `json:"tenant_id,omitempty"`
	IdentityID     *string                   `json:"identity_id,omitempty"`
	DecidedOn      *time.Time                `json:"decided_on,omitempty"`
}
