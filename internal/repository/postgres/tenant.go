package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	tenant.CreatedOn = time.Now().UTC()
	query := `INSERT INTO tenants (id, name, contact_email, status, registered_on, expires_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		tenant.ID, tenant.Name, tenant.ContactEmail, tenant.Status, tenant.RegisteredOn, tenant.ExpiresOn, tenant.CreatedOn)
	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant := &domain.Tenant{}
	query := `SELECT id, name, contact_email, status, registered_on, expires_on, created_on FROM tenants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID, &tenant.Name, &tenant.ContactEmail, &tenant.Status, &tenant.RegisteredOn, &tenant.ExpiresOn, &tenant.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tenants WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *tenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT id, name, contact_email, status, registered_on, expires_on, created_on FROM tenants ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.ContactEmail, &t.Status, &t.RegisteredOn, &t.ExpiresOn, &t.CreatedOn); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) GetExpiry(ctx context.Context, id uuid.UUID) (*time.Time, error) {
	var expiresOn *time.Time
	query := `SELECT expires_on FROM tenants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&expiresOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return expiresOn, nil
}

func (r *tenantRepository) SetExpiry(ctx context.Context, id uuid.UUID, expiresOn time.Time) error {
	query := `UPDATE tenants SET expires_on = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, expiresOn, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *tenantRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tenants SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, domain.TenantStatusRevoked, id, domain.TenantStatusActive)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
