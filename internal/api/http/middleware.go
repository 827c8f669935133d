package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/security"
	"tenantops-backend/internal/service"
)

// AuthMiddleware validates the bearer token and places the actor claims
// in the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
			return
		}

		claims, err := m.tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid or expired token."})
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), claims)))
	})
}

// RequireRole gates a route on the actor carrying one of the given roles.
func RequireRole(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ActorFromContext(r.Context())
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication required."})
				return
			}
			for _, want := range roles {
				for _, have := range claims.Roles {
					if have == want {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "Insufficient permissions."})
		})
	}
}

// LicenseExpiredRedirect is where denied requests are pointed.
const LicenseExpiredRedirect = "/license-expired"

// LicenseGuard blocks access to tenant-scoped functionality when the
// tenant's license is not active. The guard owns no mutation rights; it
// only reads the derived status. A status fetch failure is treated as
// unresolved and never as access granted.
type LicenseGuard struct {
	licenseSvc service.LicenseService
}

func NewLicenseGuard(licenseSvc service.LicenseService) *LicenseGuard {
	return &LicenseGuard{licenseSvc: licenseSvc}
}

func (g *LicenseGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(mux.Vars(r)["tenantID"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid tenant id."})
			return
		}

		status, err := g.licenseSvc.Status(r.Context(), tenantID)
		if err != nil {
			// Unresolved, not granted.
			logger.Error("License guard could not resolve status", "tenant_id", tenantID, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "License status unavailable. Try again shortly."})
			return
		}

		if !status.IsActive {
			writeJSON(w, http.StatusForbidden, errorResponse{
				Error:    "The license for this tenant has expired.",
				Redirect: LicenseExpiredRedirect,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
