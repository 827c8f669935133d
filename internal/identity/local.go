package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
)

// localProvisioner keeps credentials in memory with bcrypt-hashed
// passwords. It serves development and tests, where Firebase is not
// reachable; identity ids are freshly generated UUIDs.
type localProvisioner struct {
	mu          sync.Mutex
	hashByEmail map[string]credential
	profileRepo repository.ProfileRepository
}

type credential struct {
	identityID   string
	passwordHash []byte
}

func NewLocalProvisioner(profileRepo repository.ProfileRepository) Provisioner {
	return &localProvisioner{
		hashByEmail: make(map[string]credential),
		profileRepo: profileRepo,
	}
}

func (p *localProvisioner) CreateCredential(ctx context.Context, email, password string, meta Metadata) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	if _, exists := p.hashByEmail[email]; exists {
		p.mu.Unlock()
		return "", fmt.Errorf("credential already exists for %s", email)
	}
	id := uuid.New().String()
	p.hashByEmail[email] = credential{identityID: id, passwordHash: hash}
	p.mu.Unlock()

	profile := &domain.Profile{
		IdentityID:      id,
		Role:            domain.ProfileRoleEmployee,
		FirstName:       meta.FirstName,
		LastName:        meta.LastName,
		PendingApproval: true,
	}
	if err := p.profileRepo.Create(ctx, profile); err != nil {
		return "", fmt.Errorf("failed to seed default profile: %w", err)
	}

	return id, nil
}
