package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository"
)

type firebaseProvisioner struct {
	client      *auth.Client
	profileRepo repository.ProfileRepository
}

// NewFirebaseProvisioner builds a Provisioner backed by Firebase Auth.
// credentialsFile is the service-account JSON path; when empty the SDK
// falls back to application default credentials.
func NewFirebaseProvisioner(ctx context.Context, credentialsFile string, profileRepo repository.ProfileRepository) (Provisioner, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &firebaseProvisioner{client: client, profileRepo: profileRepo}, nil
}

func (p *firebaseProvisioner) CreateCredential(ctx context.Context, email, password string, meta Metadata) (string, error) {
	logger.ExternalServiceCall("firebase_auth", "CreateUser", "email", email)

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(meta.FirstName + " " + meta.LastName).
		EmailVerified(false).
		Disabled(false)

	user, err := p.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase_auth", "CreateUser", err)
	if err != nil {
		return "", fmt.Errorf("failed to create credential: %w", err)
	}

	profile := &domain.Profile{
		IdentityID:      user.UID,
		Role:            domain.ProfileRoleEmployee,
		FirstName:       meta.FirstName,
		LastName:        meta.LastName,
		PendingApproval: true,
	}
	if err := p.profileRepo.Create(ctx, profile); err != nil {
		return "", fmt.Errorf("failed to seed default profile: %w", err)
	}

	return user.UID, nil
}
