package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
)

// Reconcile runs a full reconciliation and returns the ordered result lines.
// It never fails: missing inputs simply produce fewer (or no) lines.
func Reconcile(in Input) []Line {
	return ReconcileWithSummary(in).Lines
}

// ReconcileWithSummary performs reconciliation and returns the lines together
// with aggregate counts about the run.
func ReconcileWithSummary(in Input) *Report {
	source, sourceStats := AggregateInventory(in.SourceRows)
	comparison, comparisonStats := AggregateSessions(in.ComparisonRows, in.StoreToWarehouse)
	diff := Diff(source, comparison)

	col := NewCollator()
	lines := emit(col, source, comparison, diff)
	sortLines(col, lines)

	summary := Summary{
		Source:        sourceStats,
		Comparison:    comparisonStats,
		KeysCompared:  len(unionKeys(source, comparison)),
		Discrepancies: len(diff),
	}
	for _, l := range lines {
		switch l.Role {
		case RoleSource:
			summary.SourceLines++
		case RoleComparison:
			summary.ComparisonLines++
		case RoleDifference:
			summary.DifferenceLines++
		}
	}

	return &Report{Lines: lines, Summary: summary}
}

// emit builds up to three lines per differing key. Lines whose bucket is empty
// or sums to zero are omitted.
func emit(col *collate.Collator, source, comparison, diff map[Key]*Bucket) []Line {
	lines := make([]Line, 0, len(diff)*3)

	for key, d := range diff {
		meta := source[key]
		if meta == nil {
			meta = d
		}

		candidates := []struct {
			role      Role
			warehouse string
			bucket    *Bucket
		}{
			{RoleSource, key.Warehouse, source[key]},
			{RoleComparison, ComparisonWarehouse, comparison[key]},
			{RoleDifference, DifferenceWarehouse, d},
		}

		for _, c := range candidates {
			if c.bucket.IsEmpty() {
				continue
			}
			sum := c.bucket.Sum()
			if sum.IsZero() {
				continue
			}
			sizes := c.bucket.Breakdown(col)
			lines = append(lines, Line{
				Concept:     meta.Concept,
				Description: meta.Description,
				Barcode:     key.Barcode,
				Warehouse:   c.warehouse,
				Origin:      key.Warehouse,
				Usage:       key.Usage,
				Role:        c.role,
				Sizes:       sizes,
				SizesText:   FormatSizes(sizes),
				Total:       sum,
			})
		}
	}

	return lines
}

// sortLines orders lines by (concept, description, usage) in Spanish collation,
// then by role priority (Dif, CSV, source), then by the key's warehouse and barcode.
func sortLines(col *collate.Collator, lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		return compareLines(col, lines[i], lines[j]) < 0
	})
}

func compareLines(col *collate.Collator, a, b Line) int {
	if c := col.CompareString(a.Concept, b.Concept); c != 0 {
		return c
	}
	if c := col.CompareString(a.Description, b.Description); c != 0 {
		return c
	}
	if c := col.CompareString(a.Usage.String(), b.Usage.String()); c != 0 {
		return c
	}
	if pa, pb := a.Role.priority(), b.Role.priority(); pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	if c := CompareSizes(col, a.Origin, b.Origin); c != 0 {
		return c
	}
	return strings.Compare(a.Barcode, b.Barcode)
}
