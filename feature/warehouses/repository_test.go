package warehouses

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"stock-reconciler/core/database"
	"stock-reconciler/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupDB opens a migrated in-memory sqlite database.
func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, NewRepository(db).AutoMigrate())
	return db
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupDB(t))
	require.True(t, repo.Available())

	require.NoError(t, repo.Upsert(ctx, "Ayala", "34"))
	require.NoError(t, repo.Upsert(ctx, "3", "35"))
	require.NoError(t, repo.Upsert(ctx, "3", "34"))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[0].Store)
	assert.Equal(t, "34", rows[0].Warehouse)
	assert.False(t, rows[0].UpdatedAt.IsZero())

	mapping, err := repo.Mapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StoreMapping{"3": "34", "Ayala": "34"}, mapping)

	found, err := repo.Delete(ctx, "Ayala")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Delete(ctx, "Ayala")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_NoDatabase(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)

	rows, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, repo.Upsert(ctx, "3", "34"), ErrNoDatabase)
	_, err = repo.Delete(ctx, "3")
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, repo.AutoMigrate(), ErrNoDatabase)
}

func TestRepository_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `store_warehouses` ORDER BY store")).
		WillReturnError(errors.New("connection lost"))

	_, err := NewRepository(db).Mapping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}
