package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/service"
)

type Handlers struct {
	registrationSvc service.RegistrationService
	cancellationSvc service.CancellationService
	licenseSvc      service.LicenseService
	profileSvc      service.ProfileService
	reconSvc        service.ReconciliationService
}

func NewHandlers(
	registrationSvc service.RegistrationService,
	cancellationSvc service.CancellationService,
	licenseSvc service.LicenseService,
	profileSvc service.ProfileService,
	reconSvc service.ReconciliationService,
) *Handlers {
	return &Handlers{
		registrationSvc: registrationSvc,
		cancellationSvc: cancellationSvc,
		licenseSvc:      licenseSvc,
		profileSvc:      profileSvc,
		reconSvc:        reconSvc,
	}
}

func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

// --- Registration requests ---

type approveRequestBody struct {
	RegisteredOn time.Time  `json:"registered_on"`
	ExpiresOn    *time.Time `json:"expires_on"`
}

type approveResponse struct {
	Tenant     *domain.Tenant `json:"tenant"`
	IdentityID string         `json:"identity_id"`
}

type submitRegistrationBody struct {
	CompanyName    string `json:"company_name"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`
	AdminFirstName string `json:"admin_first_name"`
	AdminLastName  string `json:"admin_last_name"`
	AdminEmail     string `json:"admin_email"`
}

// SubmitRegistration is the public intake for prospective tenants; no
// account exists yet, so the route carries no auth.
func (h *Handlers) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var body submitRegistrationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}
	if body.CompanyName == "" || body.CompanyEmail == "" ||
		body.AdminFirstName == "" || body.AdminLastName == "" || body.AdminEmail == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Company name, company email, and administrator name and email are required."})
		return
	}

	req := &domain.RegistrationRequest{
		CompanyName:    body.CompanyName,
		CompanyEmail:   body.CompanyEmail,
		CompanyPhone:   body.CompanyPhone,
		CompanyAddress: body.CompanyAddress,
		AdminFirstName: body.AdminFirstName,
		AdminLastName:  body.AdminLastName,
		AdminEmail:     body.AdminEmail,
	}
	if err := h.registrationSvc.SubmitRequest(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handlers) ListPendingRegistrations(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.registrationSvc.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *Handlers) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request id."})
		return
	}

	var body approveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}
	if body.RegisteredOn.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "registered_on is required."})
		return
	}

	tenant, identityID, err := h.registrationSvc.Approve(r.Context(), claims.IdentityID, requestID, body.RegisteredOn, body.ExpiresOn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, approveResponse{Tenant: tenant, IdentityID: identityID})
}

func (h *Handlers) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request id."})
		return
	}

	if err := h.registrationSvc.Reject(r.Context(), claims.IdentityID, requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Cancellation requests ---

type submitCancellationBody struct {
	Notes string `json:"notes"`
}

func (h *Handlers) SubmitCancellation(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	tenantID, ok := pathID(r, "tenantID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
		return
	}
	// A member may only file for their own tenant.
	if claims.ActorTenantID() != tenantID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "Cannot act on another tenant."})
		return
	}

	var body submitCancellationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}

	req, err := h.cancellationSvc.Submit(r.Context(), tenantID, claims.IdentityID, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type reviewCancellationBody struct {
	Approve       bool `json:"approve"`
	ExpireLicense bool `json:"expire_license"`
}

func (h *Handlers) ReviewCancellation(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request id."})
		return
	}

	var body reviewCancellationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}

	if err := h.cancellationSvc.Review(r.Context(), claims.IdentityID, requestID, body.Approve, body.ExpireLicense); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) RetryLicenseExpiry(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request id."})
		return
	}

	if err := h.cancellationSvc.RetryLicenseExpiry(r.Context(), claims.IdentityID, requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) ListCancellations(w http.ResponseWriter, r *http.Request) {
	status := domain.CancellationRequestStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.CancellationRequestStatusPending
	}

	details, err := h.cancellationSvc.ListForReview(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// --- License ---

func (h *Handlers) GetLicenseStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(r, "tenantID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
		return
	}

	status, err := h.licenseSvc.Status(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type renewLicenseBody struct {
	ExpiresOn time.Time `json:"expires_on"`
}

func (h *Handlers) RenewLicense(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	tenantID, ok := pathID(r, "tenantID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
		return
	}

	var body renewLicenseBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ExpiresOn.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "expires_on is required."})
		return
	}

	if err := h.licenseSvc.Renew(r.Context(), claims.IdentityID, tenantID, body.ExpiresOn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) RevokeTenant(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	tenantID, ok := pathID(r, "tenantID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
		return
	}

	if err := h.licenseSvc.RevokeTenant(r.Context(), claims.IdentityID, tenantID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Tenant members (license-guarded) ---

func (h *Handlers) ListTenantProfiles(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(r, "tenantID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
		return
	}

	profiles, err := h.profileSvc.ListByTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// --- Reconciliation ---

func (h *Handlers) ListReconciliation(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reconSvc.ListOpen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) ResolveReconciliation(w http.ResponseWriter, r *http.Request) {
	claims, err := ActorFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid entry id."})
		return
	}

	if err := h.reconSvc.Resolve(r.Context(), claims.IdentityID, int32(id)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
