package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"tenantops-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.TenantRepository
	repository.ProfileRepository
	repository.RegistrationRequestRepository
	repository.CancellationRequestRepository
	repository.ReconciliationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                            db,
		TenantRepository:              NewTenantRepository(db),
		ProfileRepository:             NewProfileRepository(db),
		RegistrationRequestRepository: NewRegistrationRequestRepository(db),
		CancellationRequestRepository: NewCancellationRequestRepository(db),
		ReconciliationRepository:      NewReconciliationRepository(db),
	}
}
