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

type cancellationRequestRepository struct {
	db *sql.DB
}

func NewCancellationRequestRepository(db *sql.DB) repository.CancellationRequestRepository {
	return &cancellationRequestRepository{db: db}
}

// Create inserts only when no pending request exists for the tenant. The
// guard runs inside the insert statement itself so two concurrent submits
// cannot both pass an application-level check and both commit.
func (r *cancellationRequestRepository) Create(ctx context.Context, req *domain.CancellationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = domain.CancellationRequestStatusPending
	now := time.Now().UTC()
	req.CreatedOn = now
	req.UpdatedOn = now
	query := `INSERT INTO cancellation_requests (id, tenant_id, requester_id, status, notes, created_on, updated_on)
	          SELECT $1, $2, $3, $4, $5, $6, $7
	          WHERE NOT EXISTS (
	              SELECT 1 FROM cancellation_requests WHERE tenant_id = $2 AND status = $4
	          )`
	res, err := r.db.ExecContext(ctx, query,
		req.ID, req.TenantID, req.RequesterID, req.Status, req.Notes, req.CreatedOn, req.UpdatedOn)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrPendingCancellationExists
	}
	return nil
}

func (r *cancellationRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CancellationRequest, error) {
	req := &domain.CancellationRequest{}
	query := `SELECT id, tenant_id, requester_id, status, notes, created_on, updated_on
	          FROM cancellation_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.TenantID, &req.RequesterID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *cancellationRequestRepository) GetPendingByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.CancellationRequest, error) {
	req := &domain.CancellationRequest{}
	query := `SELECT id, tenant_id, requester_id, status, notes, created_on, updated_on
	          FROM cancellation_requests WHERE tenant_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, tenantID, domain.CancellationRequestStatusPending).Scan(
		&req.ID, &req.TenantID, &req.RequesterID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *cancellationRequestRepository) ListByStatus(ctx context.Context, status domain.CancellationRequestStatus) ([]domain.CancellationRequest, error) {
	query := `SELECT id, tenant_id, requester_id, status, notes, created_on, updated_on
	          FROM cancellation_requests WHERE status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.CancellationRequest
	for rows.Next() {
		var req domain.CancellationRequest
		if err := rows.Scan(&req.ID, &req.TenantID, &req.RequesterID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *cancellationRequestRepository) Decide(ctx context.Context, id uuid.UUID, status domain.CancellationRequestStatus, updatedOn time.Time) error {
	query := `UPDATE cancellation_requests SET status = $1, updated_on = $2
	          WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, status, updatedOn, id, domain.CancellationRequestStatusPending)
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
