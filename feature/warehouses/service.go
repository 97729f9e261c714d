package warehouses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// ErrInvalidMapping is returned when a store or warehouse is blank.
var ErrInvalidMapping = errors.New("store and warehouse are required")

// Service resolves the effective store mapping and edits the stored one.
type Service struct {
	repo     *Repository
	cache    *Cache
	fallback reconcile.StoreMapping
	logger   *zap.Logger
}

// NewService creates a service. fallback is the configured mapping used for
// stores missing from the database.
func NewService(repo *Repository, fallback reconcile.StoreMapping, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    NewCache(ttl, repo.Mapping),
		fallback: fallback,
		logger:   logger,
	}
}

// Mapping returns the fallback mapping overlaid with the stored one. Without
// a database only the fallback is used; a failing database is an error, since
// the fallback may disagree with the rows an operator stored.
func (s *Service) Mapping(ctx context.Context) (reconcile.StoreMapping, error) {
	if !s.repo.Available() {
		return s.fallback.Merge(nil), nil
	}
	stored, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Error("Loading stored mapping failed", zap.Error(err))
		return nil, fmt.Errorf("failed to load stored mapping: %w", err)
	}
	return s.fallback.Merge(stored), nil
}

// List returns the stored rows.
func (s *Service) List(ctx context.Context) ([]StoreWarehouse, error) {
	return s.repo.List(ctx)
}

// Set maps store to warehouse.
func (s *Service) Set(ctx context.Context, store, warehouse string) error {
	store, warehouse = reconcile.Normalize(store), reconcile.Normalize(warehouse)
	if store == "" || warehouse == "" {
		return ErrInvalidMapping
	}
	if err := s.repo.Upsert(ctx, store, warehouse); err != nil {
		return err
	}
	s.cache.Invalidate()
	s.logger.Info("Store mapped", zap.String("store", store), zap.String("warehouse", warehouse))
	return nil
}

// Remove deletes the stored mapping of store. It reports whether one existed.
func (s *Service) Remove(ctx context.Context, store string) (bool, error) {
	found, err := s.repo.Delete(ctx, reconcile.Normalize(store))
	if err != nil {
		return false, err
	}
	s.cache.Invalidate()
	if found {
		s.logger.Info("Store mapping removed", zap.String("store", store))
	}
	return found, nil
}
