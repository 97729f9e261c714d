package warehouses

import (
	"context"
	"errors"
	"fmt"

	"stock-reconciler/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoDatabase is returned by write operations when no database is configured.
var ErrNoDatabase = errors.New("no database connection")

// Repository reads and writes the store_warehouses table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository. A nil db yields a repository whose
// reads are empty and whose writes fail with ErrNoDatabase.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Available reports whether a database is attached.
func (r *Repository) Available() bool {
	return r != nil && r.db != nil
}

// AutoMigrate creates or updates the mapping table.
func (r *Repository) AutoMigrate() error {
	if !r.Available() {
		return ErrNoDatabase
	}
	return r.db.AutoMigrate(&StoreWarehouse{})
}

// List returns every row ordered by store.
func (r *Repository) List(ctx context.Context) ([]StoreWarehouse, error) {
	if !r.Available() {
		return nil, nil
	}
	var rows []StoreWarehouse
	if err := r.db.WithContext(ctx).Order("store").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return rows, nil
}

// Mapping returns the stored rows as a StoreMapping.
func (r *Repository) Mapping(ctx context.Context) (reconcile.StoreMapping, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(reconcile.StoreMapping, len(rows))
	for _, row := range rows {
		m[row.Store] = row.Warehouse
	}
	return m, nil
}

// Upsert inserts or replaces the warehouse of store.
func (r *Repository) Upsert(ctx context.Context, store, warehouse string) error {
	if !r.Available() {
		return ErrNoDatabase
	}
	row := StoreWarehouse{Store: store, Warehouse: warehouse}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store"}},
		DoUpdates: clause.AssignmentColumns([]string{"warehouse", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save warehouse for store %s: %w", store, err)
	}
	return nil
}

// Delete removes store. It reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, store string) (bool, error) {
	if !r.Available() {
		return false, ErrNoDatabase
	}
	res := r.db.WithContext(ctx).Where("store = ?", store).Delete(&StoreWarehouse{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete warehouse for store %s: %w", store, res.Error)
	}
	return res.RowsAffected > 0, nil
}
