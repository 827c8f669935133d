package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tenantops-backend/internal/license"
	"tenantops-backend/internal/security"
)

type mockLicenseService struct {
	mock.Mock
}

func (m *mockLicenseService) Status(ctx context.Context, tenantID uuid.UUID) (license.Status, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(license.Status), args.Error(1)
}
func (m *mockLicenseService) ExpireNow(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}
func (m *mockLicenseService) Renew(ctx context.Context, actorID string, tenantID uuid.UUID, newExpiry time.Time) error {
	args := m.Called(ctx, actorID, tenantID, newExpiry)
	return args.Error(0)
}
func (m *mockLicenseService) RevokeTenant(ctx context.Context, actorID string, tenantID uuid.UUID) error {
	args := m.Called(ctx, actorID, tenantID)
	return args.Error(0)
}

func guardedRouter(guard *LicenseGuard) *mux.Router {
	router := mux.NewRouter()
	guarded := router.PathPrefix("/tenants/{tenantID}").Subrouter()
	guarded.Use(guard.Handler)
	guarded.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return router
}

func TestLicenseGuard(t *testing.T) {
	tenantID := uuid.New()

	t.Run("passes requests through for an active license", func(t *testing.T) {
		licenseSvc := new(mockLicenseService)
		licenseSvc.On("Status", mock.Anything, tenantID).Return(license.Status{IsActive: true}, nil).Once()
		router := guardedRouter(NewLicenseGuard(licenseSvc))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		licenseSvc.AssertExpectations(t)
	})

	t.Run("blocks an expired license and points at the expiry page", func(t *testing.T) {
		licenseSvc := new(mockLicenseService)
		expired := time.Now().UTC().Add(-time.Hour)
		licenseSvc.On("Status", mock.Anything, tenantID).
			Return(license.Status{IsActive: false, ExpiresAt: &expired}, nil).Once()
		router := guardedRouter(NewLicenseGuard(licenseSvc))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/ping", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, LicenseExpiredRedirect, body.Redirect)
	})

	t.Run("denies access when the status cannot be resolved", func(t *testing.T) {
		licenseSvc := new(mockLicenseService)
		licenseSvc.On("Status", mock.Anything, tenantID).
			Return(license.Status{}, errors.New("db gone")).Once()
		router := guardedRouter(NewLicenseGuard(licenseSvc))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID.String()+"/ping", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("rejects a malformed tenant id", func(t *testing.T) {
		licenseSvc := new(mockLicenseService)
		router := guardedRouter(NewLicenseGuard(licenseSvc))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenants/not-a-uuid/ping", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		licenseSvc.AssertNotCalled(t, "Status", mock.Anything, mock.Anything)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole("SUPER_ADMIN", "OPERATOR")(next)

	t.Run("allows an actor holding one of the roles", func(t *testing.T) {
		claims := &security.ActorClaims{IdentityID: "identity-123", Roles: []string{"OPERATOR"}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withActor(req.Context(), claims))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids an actor without the roles", func(t *testing.T) {
		claims := &security.ActorClaims{IdentityID: "identity-123", Roles: []string{"EMPLOYEE"}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withActor(req.Context(), claims))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
