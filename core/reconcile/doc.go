// Package reconcile compares stock counts from the inventory export ("Velneo")
// against the per-store session exports ("Tiendas") and reports per-key discrepancies.
//
// The engine is a pure, single-threaded computation. Every call allocates its own
// intermediate maps, so concurrent calls are safe as long as callers treat the
// StoreMapping they pass in as read-only.
//
// # Pipeline
//
// 1. Aggregate: each source is folded into a map from Key (barcode, warehouse, usage)
//    to a Bucket holding a sparse size→quantity map. Session records resolve their
//    warehouse through a StoreMapping; records from unmapped stores are skipped.
//
// 2. Diff: for the union of keys, the per-size difference (inventory − sessions) is
//    computed. Keys where every size agrees are dropped entirely.
//
// 3. Emit: every surviving key yields up to three lines (source, "CSV", "Dif"). A line
//    whose total is zero is omitted. Lines are ordered by concept, description and usage
//    using Spanish collation, then by role (Dif, CSV, source).
//
// # Usage Example
//
//	lines := reconcile.Reconcile(reconcile.Input{
//	    SourceRows:       inventory,
//	    ComparisonRows:   sessions,
//	    StoreToWarehouse: reconcile.StoreMapping{"3": "34"},
//	})
//	if len(lines) == 0 {
//	    // no differences
//	}
//
// An empty result is a valid outcome meaning both sources agree; it is not an error.
package reconcile
