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

type registrationRequestRepository struct {
	db *sql.DB
}

func NewRegistrationRequestRepository(db *sql.DB) repository.RegistrationRequestRepository {
	return &registrationRequestRepository{db: db}
}

const registrationRequestColumns = `id, company_name, company_email, company_phone, company_address,
	admin_first_name, admin_last_name, admin_email, status, created_on, tenant_id, identity_id, decided_on`

func (r *registrationRequestRepository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = domain.RegistrationRequestStatusPending
	req.CreatedOn = time.Now().UTC()
	query := `INSERT INTO registration_requests
	          (id, company_name, company_email, company_phone, company_address,
	           admin_first_name, admin_last_name, admin_email, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.CompanyName, req.CompanyEmail, req.CompanyPhone, req.CompanyAddress,
		req.AdminFirstName, req.AdminLastName, req.AdminEmail, req.Status, req.CreatedOn)
	return err
}

func (r *registrationRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RegistrationRequest, error) {
	req := &domain.RegistrationRequest{}
	query := `SELECT ` + registrationRequestColumns + ` FROM registration_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CompanyName, &req.CompanyEmail, &req.CompanyPhone, &req.CompanyAddress,
		&req.AdminFirstName, &req.AdminLastName, &req.AdminEmail, &req.Status, &req.CreatedOn,
		&req.TenantID, &req.IdentityID, &req.DecidedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *registrationRequestRepository) ListByStatus(ctx context.Context, status domain.RegistrationRequestStatus) ([]domain.RegistrationRequest, error) {
	query := `SELECT ` + registrationRequestColumns + ` FROM registration_requests WHERE status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RegistrationRequest
	for rows.Next() {
		var req domain.RegistrationRequest
		if err := rows.Scan(
			&req.ID, &req.CompanyName, &req.CompanyEmail, &req.CompanyPhone, &req.CompanyAddress,
			&req.AdminFirstName, &req.AdminLastName, &req.AdminEmail, &req.Status, &req.CreatedOn,
			&req.TenantID, &req.IdentityID, &req.DecidedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Finalize is the compare-and-swap that closes the double-decision race:
// only a still-pending request can be moved to a terminal status.
func (r *registrationRequestRepository) Finalize(ctx context.Context, id uuid.UUID, status domain.RegistrationRequestStatus, tenantID *uuid.UUID, identityID *string, decidedOn time.Time) error {
	query := `UPDATE registration_requests
	          SET status = $1, tenant_id = $2, identity_id = $3, decided_on = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query,
		status, tenantID, identityID, decidedOn, id, domain.RegistrationRequestStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotPending
	}
	return nil
}
