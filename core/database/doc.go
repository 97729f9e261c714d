// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection and verifies it with a ping bounded by the
// configured timeout. The database only stores the store→warehouse mapping, so
// commands treat a failed connection as a warning and fall back to the mapping
// given in configuration or flags.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns. The integrity feature uses it to verify
// that the store_warehouses table matches the expected model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "store_warehouses")
package database
