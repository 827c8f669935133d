package license

import (
	"math"
	"time"
)

// Status is the derived license classification for a tenant. It is
// recomputed on every evaluation and never persisted.
type Status struct {
	IsActive        bool       `json:"is_active"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	DaysUntilExpiry *int       `json:"days_until_expiry,omitempty"`
	IsExpiringSoon  bool       `json:"is_expiring_soon"`
}

// ExpiringSoonDays is the warning window: an active license with this many
// days or fewer remaining reports IsExpiringSoon.
const ExpiringSoonDays = 7

// Evaluate classifies a tenant expiry timestamp against now. A nil expiry
// means no enforced expiry, so the license is unconditionally active.
// The day count rounds up: 6.1 days remaining reports 7, keeping the
// warning window conservative.
func Evaluate(expiresAt *time.Time, now time.Time) Status {
	if expiresAt == nil {
		return Status{IsActive: true}
	}

	if !expiresAt.After(now) {
		return Status{IsActive: false, ExpiresAt: expiresAt}
	}

	days := int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
	return Status{
		IsActive:        true,
		ExpiresAt:       expiresAt,
		DaysUntilExpiry: &days,
		IsExpiringSoon:  days <= ExpiringSoonDays,
	}
}
