package reconcile

import (
	"sort"
)

// AggregateInventory folds inventory records into buckets keyed by
// (barcode, warehouse, usage). Each record contributes to both usages.
// Records without a barcode are skipped. A bucket is created even when the
// quantity is zero so that the article's concept and description are known
// when only the session side carries stock.
func AggregateInventory(records []InventoryRecord) (map[Key]*Bucket, Stats) {
	out := make(map[Key]*Bucket)
	stats := Stats{Rows: len(records)}

	for _, r := range records {
		barcode := Normalize(r.Barcode)
		if barcode == "" {
			stats.SkippedEmptyBarcode++
			continue
		}
		warehouse := Normalize(r.Warehouse)
		size := Normalize(r.Size)

		for _, usage := range Usages {
			qty := r.QuantityNew
			if usage == UsageUsed {
				qty = r.QuantityUsed
			}

			key := Key{Barcode: barcode, Warehouse: warehouse, Usage: usage}
			b, ok := out[key]
			if !ok {
				b = newBucket(Normalize(r.Concept), Normalize(r.Description), warehouse, usage)
				out[key] = b
			}
			b.Add(size, qty)
		}
		stats.Accepted++
	}

	return out, stats
}

// AggregateSessions folds session records into buckets. The warehouse of the key
// comes from mapping; records from unmapped stores, without a barcode or with
// zero units are skipped.
func AggregateSessions(records []SessionRecord, mapping StoreMapping) (map[Key]*Bucket, Stats) {
	out := make(map[Key]*Bucket)
	stats := Stats{Rows: len(records)}
	unmapped := make(map[string]struct{})

	for _, r := range records {
		barcode := Normalize(r.Barcode)
		if barcode == "" {
			stats.SkippedEmptyBarcode++
			continue
		}
		if r.Units.IsZero() {
			stats.SkippedZeroUnits++
			continue
		}
		warehouse, ok := mapping.Resolve(r.Store)
		if !ok {
			stats.SkippedUnmapped++
			unmapped[Normalize(r.Store)] = struct{}{}
			continue
		}

		key := Key{Barcode: barcode, Warehouse: warehouse, Usage: r.Usage}
		b, ok := out[key]
		if !ok {
			b = newBucket("", "", warehouse, r.Usage)
			out[key] = b
		}
		b.Add(Normalize(r.Size), r.Units)
		stats.Accepted++
	}

	stats.UnmappedStores = make([]string, 0, len(unmapped))
	for s := range unmapped {
		stats.UnmappedStores = append(stats.UnmappedStores, s)
	}
	sort.Strings(stats.UnmappedStores)

	return out, stats
}
