package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `INSERT INTO profiles (id, identity_id, tenant_id, role, first_name, last_name, pending_approval)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.IdentityID, p.TenantID, p.Role, p.FirstName, p.LastName, p.PendingApproval)
	return err
}

func (r *profileRepository) GetByIdentity(ctx context.Context, identityID string) (*domain.Profile, error) {
	p := &domain.Profile{}
	query := `SELECT id, identity_id, tenant_id, role, first_name, last_name, pending_approval
	          FROM profiles WHERE identity_id = $1`
	err := r.db.QueryRowContext(ctx, query, identityID).Scan(
		&p.ID, &p.IdentityID, &p.TenantID, &p.Role, &p.FirstName, &p.LastName, &p.PendingApproval)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) BindToTenant(ctx context.Context, identityID string, tenantID uuid.UUID, role domain.ProfileRole, firstName, lastName string) error {
	query := `UPDATE profiles
	          SET tenant_id = $1, role = $2, first_name = $3, last_name = $4, pending_approval = FALSE
	          WHERE identity_id = $5`
	res, err := r.db.ExecContext(ctx, query, tenantID, role, firstName, lastName, identityID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *profileRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Profile, error) {
	query := `SELECT id, identity_id, tenant_id, role, first_name, last_name, pending_approval
	          FROM profiles WHERE tenant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.IdentityID, &p.TenantID, &p.Role, &p.FirstName, &p.LastName, &p.PendingApproval); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
