package warehouses

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Mapping(t *testing.T) {
	ctx := context.Background()
	fallback := reconcile.StoreMapping{"3": "30", "4": "40"}
	svc := NewService(NewRepository(setupDB(t)), fallback, time.Minute, zap.NewNop())

	m, err := svc.Mapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallback, m)

	require.NoError(t, svc.Set(ctx, " 3 ", " 34 "))
	m, err = svc.Mapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StoreMapping{"3": "34", "4": "40"}, m, "stored rows override the fallback")

	found, err := svc.Remove(ctx, "3")
	require.NoError(t, err)
	assert.True(t, found)

	m, err = svc.Mapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30", m["3"])
	assert.Equal(t, "30", fallback["3"], "fallback is never modified")
}

func TestService_Set_Invalid(t *testing.T) {
	svc := NewService(NewRepository(setupDB(t)), nil, time.Minute, zap.NewNop())

	assert.ErrorIs(t, svc.Set(context.Background(), "3", " "), ErrInvalidMapping)
	assert.ErrorIs(t, svc.Set(context.Background(), "", "34"), ErrInvalidMapping)
}

func TestService_NoDatabase(t *testing.T) {
	svc := NewService(NewRepository(nil), reconcile.StoreMapping{"3": "34"}, time.Minute, zap.NewNop())

	m, err := svc.Mapping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reconcile.StoreMapping{"3": "34"}, m)
	assert.ErrorIs(t, svc.Set(context.Background(), "4", "35"), ErrNoDatabase)
}

func TestService_DatabaseFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("timeout"))

	svc := NewService(NewRepository(db), reconcile.StoreMapping{"3": "34"}, time.Minute, zap.NewNop())
	m, err := svc.Mapping(context.Background())
	require.Error(t, err, "a failing database must not silently fall back")
	assert.Contains(t, err.Error(), "timeout")
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}
