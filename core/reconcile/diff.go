package reconcile

// Diff computes, for the union of keys in a and b, the per-size difference a − b.
// Only non-zero sizes are kept and keys whose difference is empty are dropped,
// even if both sides carried quantities that cancel exactly.
func Diff(a, b map[Key]*Bucket) map[Key]*Bucket {
	out := make(map[Key]*Bucket)

	for key := range unionKeys(a, b) {
		left, right := a[key], b[key]
		meta := left
		if meta == nil {
			meta = right
		}

		d := newBucket(meta.Concept, meta.Description, key.Warehouse, key.Usage)
		if left != nil {
			for size, qty := range left.Sizes {
				d.Add(size, qty)
			}
		}
		if right != nil {
			for size, qty := range right.Sizes {
				d.Add(size, qty.Neg())
			}
		}

		if d.IsEmpty() {
			continue
		}
		out[key] = d
	}

	return out
}

// unionKeys creates a union of the keys of both maps.
func unionKeys(a, b map[Key]*Bucket) map[Key]struct{} {
	union := make(map[Key]struct{}, len(a)+len(b))
	for key := range a {
		union[key] = struct{}{}
	}
	for key := range b {
		union[key] = struct{}{}
	}
	return union
}

