// Package warehouses manages the store to warehouse mapping.
//
// Session exports identify stores by number or name while the inventory uses
// warehouse codes. The mapping between them lives in the store_warehouses
// table and can be edited over HTTP (/warehouses) or with the
// `warehouses` command. The configured mapping (RECONCILE_MAPPING) acts as a
// fallback; database rows take precedence over it.
//
// Reads go through a TTL cache; concurrent misses share one query.
package warehouses
