// Package identity wraps the external credential-issuance service. The
// rest of the application only ever sees opaque identity ids.
package identity

import "context"

// Metadata tags a new credential with the person it belongs to.
type Metadata struct {
	FirstName string
	LastName  string
}

// Provisioner creates a login credential for an email/password pair and
// returns the opaque identity id. Implementations also seed the default
// profile record (no tenant, pending approval) for the new identity.
type Provisioner interface {
	CreateCredential(ctx context.Context, email, password string, meta Metadata) (string, error)
}
