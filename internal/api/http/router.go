package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"tenantops-backend/internal/domain"
)

// NewRouter wires the console API. Operator routes require an operator
// role; tenant member features sit behind the license guard.
func NewRouter(h *Handlers, auth *AuthMiddleware, guard *LicenseGuard) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Public intake: prospective tenants have no credentials yet.
	r.HandleFunc("/api/v1/registration-requests", h.SubmitRegistration).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Handler)

	operatorOnly := RequireRole(string(domain.ProfileRoleSuperAdmin), "OPERATOR")

	// Operator console: registration review.
	reg := api.PathPrefix("/registration-requests").Subrouter()
	reg.Use(operatorOnly)
	reg.HandleFunc("", h.ListPendingRegistrations).Methods(http.MethodGet)
	reg.HandleFunc("/{id}/approve", h.ApproveRegistration).Methods(http.MethodPost)
	reg.HandleFunc("/{id}/reject", h.RejectRegistration).Methods(http.MethodPost)

	// Operator console: cancellation review.
	cancel := api.PathPrefix("/cancellation-requests").Subrouter()
	cancel.Use(operatorOnly)
	cancel.HandleFunc("", h.ListCancellations).Methods(http.MethodGet)
	cancel.HandleFunc("/{id}/review", h.ReviewCancellation).Methods(http.MethodPost)
	cancel.HandleFunc("/{id}/retry-license-expiry", h.RetryLicenseExpiry).Methods(http.MethodPost)

	// Operator console: license administration and reconciliation.
	api.Handle("/tenants/{tenantID}/license/renew",
		operatorOnly(http.HandlerFunc(h.RenewLicense))).Methods(http.MethodPost)
	api.Handle("/tenants/{tenantID}/revoke",
		operatorOnly(http.HandlerFunc(h.RevokeTenant))).Methods(http.MethodPost)
	recon := api.PathPrefix("/admin/reconciliation").Subrouter()
	recon.Use(operatorOnly)
	recon.HandleFunc("", h.ListReconciliation).Methods(http.MethodGet)
	recon.HandleFunc("/{id}/resolve", h.ResolveReconciliation).Methods(http.MethodPost)

	// Tenant self-service. License status and cancellation submission stay
	// reachable on an expired license; member features do not.
	api.HandleFunc("/tenants/{tenantID}/license", h.GetLicenseStatus).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{tenantID}/cancellation-requests", h.SubmitCancellation).Methods(http.MethodPost)

	member := api.PathPrefix("/tenants/{tenantID}").Subrouter()
	member.Use(guard.Handler)
	member.HandleFunc("/profiles", h.ListTenantProfiles).Methods(http.MethodGet)

	return r
}
