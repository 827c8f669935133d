package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tenantops-backend/internal/repository"
	"tenantops-backend/internal/service"
)

type errorResponse struct {
	Error      string `json:"error"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Redirect   string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps service failures to operator-facing responses. Raw store
// errors travel only in the diagnostic field.
func writeError(w http.ResponseWriter, err error) {
	var sagaErr *service.SagaError
	if errors.As(err, &sagaErr) {
		status := http.StatusBadGateway
		if sagaErr.Stage == service.StageRequestFinalize {
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: sagaErr.Message(), Diagnostic: sagaErr.Error()})
		return
	}

	var cascadeErr *service.LicenseCascadeError
	if errors.As(err, &cascadeErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:      "The cancellation was approved but the license could not be expired. Retry the license expiry.",
			Diagnostic: cascadeErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrRequestNotPending):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "This request has already been decided."})
	case errors.Is(err, repository.ErrPendingCancellationExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "A cancellation request is already pending for this tenant."})
	case errors.Is(err, service.ErrInvalidRenewal):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "The renewal date must move the license expiration forward."})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Record not found."})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong.", Diagnostic: err.Error()})
	}
}
