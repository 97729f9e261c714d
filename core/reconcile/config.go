package reconcile

import "time"

// Config holds the reconciliation settings shared by the CLI and the server.
type Config struct {
	// Mapping is the default store to warehouse mapping, e.g. "3=34,Ayala=34".
	// Entries stored in the database take precedence over it.
	Mapping string `mapstructure:"mapping" default:""`
	// InventoryObject is the object key of the inventory export in the bucket.
	InventoryObject string `mapstructure:"inventory_object" default:"exports/velneo/inventario.csv"`
	// SessionsPrefix is the bucket prefix holding the store session exports.
	SessionsPrefix string `mapstructure:"sessions_prefix" default:"exports/tiendas/"`
	// ReportsPrefix is where generated spreadsheets are uploaded.
	ReportsPrefix string `mapstructure:"reports_prefix" default:"reports/"`
	// MappingCacheSeconds is how long the database mapping is cached.
	MappingCacheSeconds int `mapstructure:"mapping_cache_seconds" default:"60"`
}

// StoreMapping parses Mapping.
func (c Config) StoreMapping() (StoreMapping, error) {
	return ParseMapping(c.Mapping)
}

// MappingCacheTTL returns the mapping cache lifetime. Non-positive values disable caching.
func (c Config) MappingCacheTTL() time.Duration {
	if c.MappingCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.MappingCacheSeconds) * time.Second
}
