package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/repository"
	"tenantops-backend/internal/repository/postgres"
)

func TestCancellationRequestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts when no pending request exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCancellationRequestRepository(db)

		req := &domain.CancellationRequest{
			TenantID:    uuid.New(),
			RequesterID: "identity-123",
			Notes:       "closing down",
		}

		mock.ExpectExec("INSERT INTO cancellation_requests").
			WithArgs(sqlmock.AnyArg(), req.TenantID, "identity-123", domain.CancellationRequestStatusPending,
				"closing down", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(ctx, req)

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, req.ID)
		assert.Equal(t, domain.CancellationRequestStatusPending, req.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses the insert when a pending request already exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCancellationRequestRepository(db)

		req := &domain.CancellationRequest{
			TenantID:    uuid.New(),
			RequesterID: "identity-123",
		}

		mock.ExpectExec("INSERT INTO cancellation_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Create(ctx, req)

		assert.ErrorIs(t, err, repository.ErrPendingCancellationExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancellationRequestRepository_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("decides a pending request", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCancellationRequestRepository(db)

		id := uuid.New()
		updatedOn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec("UPDATE cancellation_requests").
			WithArgs(domain.CancellationRequestStatusApproved, updatedOn, id, domain.CancellationRequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Decide(ctx, id, domain.CancellationRequestStatusApproved, updatedOn)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a lost race when the request is no longer pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCancellationRequestRepository(db)

		id := uuid.New()
		updatedOn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec("UPDATE cancellation_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Decide(ctx, id, domain.CancellationRequestStatusRejected, updatedOn)

		assert.ErrorIs(t, err, repository.ErrNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancellationRequestRepository_GetPendingByTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found when no pending request exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCancellationRequestRepository(db)

		tenantID := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM cancellation_requests WHERE tenant_id").
			WithArgs(tenantID, domain.CancellationRequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		req, err := repo.GetPendingByTenant(ctx, tenantID)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, req)
	})
}
