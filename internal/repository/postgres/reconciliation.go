package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
)

type reconciliationRepository struct {
	db *sql.DB
}

func NewReconciliationRepository(db *sql.DB) repository.ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(ctx context.Context, entry *domain.ReconciliationEntry) error {
	entry.CreatedOn = time.Now().UTC()
	query := `INSERT INTO reconciliation_entries (kind, request_id, identity_id, email, diagnostic, resolved, created_on)
	          VALUES ($1, $2, $3, $4, $5, FALSE, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		entry.Kind, entry.RequestID, entry.IdentityID, entry.Email, entry.Diagnostic, entry.CreatedOn).Scan(&entry.ID)
}

func (r *reconciliationRepository) ListOpen(ctx context.Context) ([]domain.ReconciliationEntry, error) {
	query := `SELECT id, kind, request_id, identity_id, email, diagnostic, resolved, created_on
	          FROM reconciliation_entries WHERE resolved = FALSE ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ReconciliationEntry
	for rows.Next() {
		var e domain.ReconciliationEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.RequestID, &e.IdentityID, &e.Email, &e.Diagnostic, &e.Resolved, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *reconciliationRepository) Resolve(ctx context.Context, id int32) error {
	query := `UPDATE reconciliation_entries SET resolved = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
