package domain

import (
	"time"

	"github.com/google/uuid"
)

type CancellationRequestStatus string

const (
	CancellationRequestStatusPending  CancellationRequestStatus = "PENDING"
	CancellationRequestStatusApproved CancellationRequestStatus = "APPROVED"
	CancellationRequestStatusRejected CancellationRequestStatus = "REJECTED"
)

// CancellationRequest is a tenant member's request to cancel the
// subscription. At most one pending request should exist per tenant.
type CancellationRequest struct {
	ID          uuid.UUID                 `json:"id"`
	TenantID    uuid.UUID                 `json:"tenant_id"`
	RequesterID string                    `json:"requester_id"`
	Status      CancellationRequestStatus `json:"status"`
	Notes       string                    `json:"notes"`
	CreatedOn   time.Time                 `json:"created_on"`
	UpdatedOn   time.Time                 `json:"updated_on"`
}
