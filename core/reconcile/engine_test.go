package reconcile

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func inv(barcode, warehouse, size string, nuevo, usado int64) InventoryRecord {
	return InventoryRecord{
		Barcode:      barcode,
		Concept:      "C" + barcode,
		Description:  "Article " + barcode,
		Size:         size,
		Warehouse:    warehouse,
		QuantityNew:  qty(nuevo),
		QuantityUsed: qty(usado),
	}
}

func sess(store, barcode, size string, usage Usage, units int64) SessionRecord {
	return SessionRecord{Store: store, Barcode: barcode, Size: size, Usage: usage, Units: qty(units)}
}

// linesByRole indexes lines by role; it fails if a role appears twice.
func linesByRole(t *testing.T, lines []Line) map[Role]Line {
	t.Helper()
	out := make(map[Role]Line)
	for _, l := range lines {
		_, dup := out[l.Role]
		require.False(t, dup, "role %s emitted twice", l.Role)
		out[l.Role] = l
	}
	return out
}

// TestReconcile_ThreeLines tests the basic discrepancy example: 5 in inventory, 3 in store.
func TestReconcile_ThreeLines(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows:       []InventoryRecord{inv("111", "34", "M", 5, 0)},
		ComparisonRows:   []SessionRecord{sess("3", "111", "M", UsageNew, 3)},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	require.Len(t, lines, 3)

	// Difference first, then comparison, then source.
	assert.Equal(t, RoleDifference, lines[0].Role)
	assert.Equal(t, RoleComparison, lines[1].Role)
	assert.Equal(t, RoleSource, lines[2].Role)

	byRole := linesByRole(t, lines)

	src := byRole[RoleSource]
	assert.Equal(t, "34", src.Warehouse)
	assert.Equal(t, "M 5", src.SizesText)
	assert.Equal(t, "5", src.Total.String())
	assert.Equal(t, UsageNew, src.Usage)
	assert.Equal(t, "C111", src.Concept)

	cmp := byRole[RoleComparison]
	assert.Equal(t, ComparisonWarehouse, cmp.Warehouse)
	assert.Equal(t, "M 3", cmp.SizesText)
	assert.Equal(t, "3", cmp.Total.String())
	assert.Equal(t, "34", cmp.Origin)

	dif := byRole[RoleDifference]
	assert.Equal(t, DifferenceWarehouse, dif.Warehouse)
	assert.Equal(t, "M 2", dif.SizesText)
	assert.Equal(t, "2", dif.Total.String())
}

// TestReconcile_AgreementSuppressed tests that full agreement produces no lines.
func TestReconcile_AgreementSuppressed(t *testing.T) {
	report := ReconcileWithSummary(Input{
		SourceRows:       []InventoryRecord{inv("111", "34", "M", 5, 0)},
		ComparisonRows:   []SessionRecord{sess("3", "111", "M", UsageNew, 5)},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	assert.Empty(t, report.Lines)
	assert.True(t, report.NoDifferences())
	assert.Equal(t, 0, report.Summary.Discrepancies)
	assert.Equal(t, 2, report.Summary.KeysCompared) // new + used buckets of the inventory row
}

// TestReconcile_UnmappedStoreExcluded tests that sessions from unmapped stores never contribute.
func TestReconcile_UnmappedStoreExcluded(t *testing.T) {
	report := ReconcileWithSummary(Input{
		SourceRows:       []InventoryRecord{inv("111", "34", "M", 5, 0)},
		ComparisonRows:   []SessionRecord{sess("9", "111", "M", UsageNew, 5)},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	byRole := linesByRole(t, report.Lines)
	require.Len(t, report.Lines, 2)

	assert.Equal(t, "5", byRole[RoleSource].Total.String())
	assert.Equal(t, "5", byRole[RoleDifference].Total.String())
	_, hasComparison := byRole[RoleComparison]
	assert.False(t, hasComparison)

	assert.Equal(t, 1, report.Summary.Comparison.SkippedUnmapped)
	assert.Equal(t, []string{"9"}, report.Summary.Comparison.UnmappedStores)
}

// TestReconcile_ComparisonOnly tests a key that only exists in the session exports.
func TestReconcile_ComparisonOnly(t *testing.T) {
	lines := Reconcile(Input{
		ComparisonRows:   []SessionRecord{sess("3", "222", "L", UsageUsed, 2)},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	require.Len(t, lines, 2)
	byRole := linesByRole(t, lines)
	assert.Equal(t, "2", byRole[RoleComparison].Total.String())
	assert.Equal(t, "-2", byRole[RoleDifference].Total.String())
	assert.Equal(t, "L -2", byRole[RoleDifference].SizesText)
	assert.Equal(t, "222", byRole[RoleDifference].Barcode)
	assert.Equal(t, UsageUsed, byRole[RoleDifference].Usage)
}

// TestReconcile_MetadataFromZeroInventory tests that a zero inventory row still names the article.
func TestReconcile_MetadataFromZeroInventory(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows:       []InventoryRecord{inv("111", "34", "M", 0, 0)},
		ComparisonRows:   []SessionRecord{sess("3", "111", "M", UsageNew, 1)},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, "C111", l.Concept)
		assert.Equal(t, "Article 111", l.Description)
	}
}

// TestReconcile_MultiSizeBreakdown tests size ordering and the breakdown text.
func TestReconcile_MultiSizeBreakdown(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows: []InventoryRecord{
			inv("111", "34", "ÚNICO", 1, 0),
			inv("111", "34", "XL", 2, 0),
			inv("111", "34", "42", 3, 0),
			inv("111", "34", "8", 4, 0),
			inv("111", "34", "L", 5, 0),
		},
	})

	byRole := linesByRole(t, lines)
	assert.Equal(t, "8 4 | 42 3 | L 5 | XL 2 | ÚNICO 1", byRole[RoleSource].SizesText)
	assert.Equal(t, "15", byRole[RoleSource].Total.String())
}

// TestReconcile_ZeroTotalLineOmitted tests that a bucket whose sizes cancel out is not emitted.
func TestReconcile_ZeroTotalLineOmitted(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows: []InventoryRecord{
			inv("111", "34", "M", 2, 0),
			inv("111", "34", "L", -2, 0),
		},
	})

	for _, l := range lines {
		assert.False(t, l.Total.IsZero(), "line %+v has zero total", l)
	}
	assert.Empty(t, lines)
}

// TestReconcile_UsedStock tests that used quantities reconcile against used sessions.
func TestReconcile_UsedStock(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows: []InventoryRecord{inv("111", "34", "M", 0, 4)},
		ComparisonRows: []SessionRecord{
			sess("3", "111", "M", UsageUsed, 4),
			sess("3", "111", "M", UsageNew, 1),
		},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, UsageNew, l.Usage)
	}
}

// TestReconcile_SumConservation tests that the difference total equals source minus comparison.
func TestReconcile_SumConservation(t *testing.T) {
	lines := Reconcile(Input{
		SourceRows: []InventoryRecord{
			inv("111", "34", "M", 5, 0),
			inv("111", "34", "L", 1, 0),
			inv("111", "34", "S", 7, 0),
		},
		ComparisonRows: []SessionRecord{
			sess("3", "111", "M", UsageNew, 2),
			sess("3", "111", "XL", UsageNew, 3),
			sess("3", "111", "S", UsageNew, 7),
		},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	byRole := linesByRole(t, lines)
	src, cmp, dif := byRole[RoleSource], byRole[RoleComparison], byRole[RoleDifference]
	assert.True(t, dif.Total.Equal(src.Total.Sub(cmp.Total)))
	assert.Equal(t, "L 1 | M 3 | XL -3", dif.SizesText)
}

// TestReconcile_Deterministic tests that permuting input rows changes nothing.
func TestReconcile_Deterministic(t *testing.T) {
	source := []InventoryRecord{
		inv("111", "34", "M", 5, 1),
		inv("111", "34", "M", 2, 0),
		inv("222", "34", "40", 1, 0),
		inv("222", "35", "40", 3, 0),
		inv("333", "35", "U", 0, 2),
		inv("", "35", "U", 9, 9),
	}
	comparison := []SessionRecord{
		sess("3", "111", "M", UsageNew, 3),
		sess("3", "111", "M", UsageUsed, 1),
		sess("4", "222", "40", UsageNew, 5),
		sess("9", "333", "U", UsageUsed, 2),
		sess("4", "333", "U", UsageUsed, 0),
	}
	mapping := StoreMapping{"3": "34", "4": "35"}

	want := Reconcile(Input{SourceRows: source, ComparisonRows: comparison, StoreToWarehouse: mapping})
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		s := append([]InventoryRecord(nil), source...)
		c := append([]SessionRecord(nil), comparison...)
		rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })

		got := Reconcile(Input{SourceRows: s, ComparisonRows: c, StoreToWarehouse: mapping})
		require.Len(t, got, len(want))
		for k := range want {
			assert.Equal(t, want[k].Barcode, got[k].Barcode)
			assert.Equal(t, want[k].Role, got[k].Role)
			assert.Equal(t, want[k].Origin, got[k].Origin)
			assert.Equal(t, want[k].SizesText, got[k].SizesText)
			assert.True(t, want[k].Total.Equal(got[k].Total))
		}
	}
}

// TestReconcile_SortOrder tests collation of concepts and the role priority.
func TestReconcile_SortOrder(t *testing.T) {
	source := []InventoryRecord{
		{Barcode: "1", Concept: "Ñandú", Warehouse: "34", Size: "M", QuantityNew: qty(1)},
		{Barcode: "2", Concept: "nube", Warehouse: "34", Size: "M", QuantityNew: qty(1)},
		{Barcode: "3", Concept: "Óptica", Warehouse: "34", Size: "M", QuantityNew: qty(1)},
		{Barcode: "4", Concept: "Zapato", Warehouse: "34", Size: "M", QuantityNew: qty(1)},
	}

	lines := Reconcile(Input{SourceRows: source})
	require.Len(t, lines, 8)

	var concepts []string
	for i := 0; i < len(lines); i += 2 {
		concepts = append(concepts, lines[i].Concept)
		assert.Equal(t, RoleDifference, lines[i].Role)
		assert.Equal(t, RoleSource, lines[i+1].Role)
	}
	// Spanish collation: ñ sorts after n, accented vowels sort with their base letter.
	assert.Equal(t, []string{"nube", "Ñandú", "Óptica", "Zapato"}, concepts)
}

// TestReconcile_EmptyInput tests that nil inputs degrade to an empty result.
func TestReconcile_EmptyInput(t *testing.T) {
	report := ReconcileWithSummary(Input{})
	assert.Empty(t, report.Lines)
	assert.True(t, report.NoDifferences())
	assert.Equal(t, 0, report.Summary.KeysCompared)
}

// TestReconcileWithSummary_Counts tests the summary counters.
func TestReconcileWithSummary_Counts(t *testing.T) {
	report := ReconcileWithSummary(Input{
		SourceRows: []InventoryRecord{
			inv("111", "34", "M", 5, 0),
			inv("", "34", "M", 5, 0),
		},
		ComparisonRows: []SessionRecord{
			sess("3", "111", "M", UsageNew, 3),
			sess("3", "", "M", UsageNew, 3),
			sess("3", "111", "M", UsageNew, 0),
			sess("7", "111", "M", UsageNew, 1),
		},
		StoreToWarehouse: StoreMapping{"3": "34"},
	})

	s := report.Summary
	assert.Equal(t, 2, s.Source.Rows)
	assert.Equal(t, 1, s.Source.Accepted)
	assert.Equal(t, 1, s.Source.SkippedEmptyBarcode)

	assert.Equal(t, 4, s.Comparison.Rows)
	assert.Equal(t, 1, s.Comparison.Accepted)
	assert.Equal(t, 1, s.Comparison.SkippedEmptyBarcode)
	assert.Equal(t, 1, s.Comparison.SkippedZeroUnits)
	assert.Equal(t, 1, s.Comparison.SkippedUnmapped)

	assert.Equal(t, 1, s.Discrepancies)
	assert.Equal(t, 1, s.SourceLines)
	assert.Equal(t, 1, s.ComparisonLines)
	assert.Equal(t, 1, s.DifferenceLines)
}
