package http

import (
	"context"
	"errors"

	"tenantops-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

var errNoActor = errors.New("no authenticated actor in request context")

// ActorFromContext returns the authenticated actor claims placed by the
// auth middleware. Handlers pass the identity and tenant id down to
// services explicitly; nothing below this layer reads the context for
// them.
func ActorFromContext(ctx context.Context) (*security.ActorClaims, error) {
	claims, ok := ctx.Value(actorContextKey).(*security.ActorClaims)
	if !ok || claims == nil {
		return nil, errNoActor
	}
	return claims, nil
}

func withActor(ctx context.Context, claims *security.ActorClaims) context.Context {
	return context.WithValue(ctx, actorContextKey, claims)
}
