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

func TestTenantRepository_GetExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a nil expiry for a tenant without one", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		mock.ExpectQuery("SELECT expires_on FROM tenants").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"expires_on"}).AddRow(nil))

		expiresOn, err := repo.GetExpiry(ctx, id)

		assert.NoError(t, err)
		assert.Nil(t, expiresOn)
	})

	t.Run("returns the expiry timestamp", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT expires_on FROM tenants").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"expires_on"}).AddRow(expiry))

		expiresOn, err := repo.GetExpiry(ctx, id)

		assert.NoError(t, err)
		require.NotNil(t, expiresOn)
		assert.True(t, expiresOn.Equal(expiry))
	})

	t.Run("returns not found for an unknown tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		mock.ExpectQuery("SELECT expires_on FROM tenants").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"expires_on"}))

		_, err = repo.GetExpiry(ctx, id)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTenantRepository_SetExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the expiry", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectExec("UPDATE tenants SET expires_on").
			WithArgs(expiry, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SetExpiry(ctx, id, expiry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when the tenant does not exist", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectExec("UPDATE tenants SET expires_on").
			WithArgs(expiry, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SetExpiry(ctx, id, expiry)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTenantRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes an active tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		mock.ExpectExec("UPDATE tenants SET status").
			WithArgs(domain.TenantStatusRevoked, id, domain.TenantStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Revoke(ctx, id)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when the tenant is not active", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewTenantRepository(db)

		id := uuid.New()
		mock.ExpectExec("UPDATE tenants SET status").
			WithArgs(domain.TenantStatusRevoked, id, domain.TenantStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Revoke(ctx, id)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTenantRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTenantRepository(db)

	expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tenant := &domain.Tenant{
		Name:         "Acme Corp",
		ContactEmail: "contact@acme.test",
		Status:       domain.TenantStatusActive,
		RegisteredOn: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiresOn:    &expiry,
	}

	mock.ExpectExec("INSERT INTO tenants").
		WithArgs(sqlmock.AnyArg(), "Acme Corp", "contact@acme.test", domain.TenantStatusActive,
			tenant.RegisteredOn, &expiry, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, tenant)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tenant.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
