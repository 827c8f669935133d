package jobs

import (
	"context"
	"time"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/license"
	"tenantops-backend/internal/logger"
)

// SendExpiryReminders emails every active tenant whose license is inside
// the expiring-soon window.
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func(ctx context.Context) {
		tenants, err := jr.store.TenantRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list tenants for expiry reminders", "error", err)
			return
		}

		now := time.Now().UTC()
		sent := 0
		for _, tenant := range tenants {
			if tenant.Status != domain.TenantStatusActive {
				continue
			}
			status := license.Evaluate(tenant.ExpiresOn, now)
			if !status.IsActive || !status.IsExpiringSoon {
				continue
			}

			if err := jr.services.Email.SendLicenseExpiryReminder(ctx, tenant.ContactEmail, tenant.Name, *status.DaysUntilExpiry); err != nil {
				logger.Error("Failed to send expiry reminder",
					"tenant_id", tenant.ID, "tenant_name", tenant.Name, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Expiry reminders sent", "count", sent)
	})
}

// SendReconciliationReport emails the ops address a summary of open
// provisioning inconsistencies. No report is sent when there are none.
func (jr *JobRunner) SendReconciliationReport() {
	jr.runWithRecovery("SendReconciliationReport", func(ctx context.Context) {
		entries, err := jr.services.Reconciliation.ListOpen(ctx)
		if err != nil {
			logger.Error("Failed to list reconciliation entries", "error", err)
			return
		}
		if len(entries) == 0 {
			logger.Info("No open reconciliation entries")
			return
		}

		if err := jr.services.Email.SendReconciliationReport(ctx, jr.config.SendGrid.OpsEmail, entries); err != nil {
			logger.Error("Failed to send reconciliation report", "error", err)
			return
		}
		logger.Info("Reconciliation report sent", "entries", len(entries))
	})
}
