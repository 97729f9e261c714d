package reconcile

import (
	"github.com/shopspring/decimal"
)

// Usage is the condition of a stock unit.
type Usage int

const (
	// UsageNew is brand new stock.
	UsageNew Usage = iota
	// UsageUsed is used or rented stock.
	UsageUsed
)

// Usages lists every usage in display order.
var Usages = []Usage{UsageNew, UsageUsed}

// String returns the display label of the usage.
func (u Usage) String() string {
	if u == UsageUsed {
		return "Usado"
	}
	return "Nuevo"
}

// MarshalText renders the usage label in JSON and other text encodings.
func (u Usage) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses a usage label with ParseUsage.
func (u *Usage) UnmarshalText(text []byte) error {
	*u = ParseUsage(string(text))
	return nil
}

// InventoryRecord is one row of the inventory export.
type InventoryRecord struct {
	Barcode      string          `json:"barcode"`
	Concept      string          `json:"concept"`
	Description  string          `json:"description"`
	Size         string          `json:"size"`
	Warehouse    string          `json:"warehouse"`
	QuantityNew  decimal.Decimal `json:"quantity_new"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}

// SessionRecord is one row of a store session export.
type SessionRecord struct {
	Store   string          `json:"store"`
	Usage   Usage           `json:"usage"`
	Size    string          `json:"size"`
	Units   decimal.Decimal `json:"units"`
	Barcode string          `json:"barcode"`
}

// Key groups records for comparison. Size is deliberately not part of it:
// sizes live inside the Bucket owned by the key.
type Key struct {
	Barcode   string
	Warehouse string
	Usage     Usage
}

// Role identifies which side of the comparison a Line reports.
type Role string

const (
	// RoleDifference is the signed per-size delta (inventory − sessions).
	RoleDifference Role = "difference"
	// RoleComparison is the session (store CSV) side.
	RoleComparison Role = "comparison"
	// RoleSource is the inventory side.
	RoleSource Role = "source"
)

// Literal warehouse labels that replace the key's warehouse on non-source lines.
const (
	ComparisonWarehouse = "CSV"
	DifferenceWarehouse = "Dif"
)

// priority orders roles inside a group: Dif, then CSV, then the source warehouse.
func (r Role) priority() int {
	switch r {
	case RoleDifference:
		return 0
	case RoleComparison:
		return 1
	default:
		return 2
	}
}

// SizeQuantity is one entry of a per-size breakdown.
type SizeQuantity struct {
	Size     string          `json:"size"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Line is the atomic unit of output, ready for tabular display.
type Line struct {
	// Concept is the article code taken from the inventory export.
	Concept string `json:"concept"`

	// Description is the article description taken from the inventory export.
	Description string `json:"description"`

	// Barcode identifies the article; it is kept so that keys only present
	// in the session exports remain identifiable.
	Barcode string `json:"barcode"`

	// Warehouse is the key's warehouse for source lines, "CSV" for comparison
	// lines and "Dif" for difference lines.
	Warehouse string `json:"warehouse"`

	// Origin is always the warehouse of the key the line belongs to.
	Origin string `json:"origin"`

	Usage Usage `json:"usage"`
	Role  Role  `json:"role"`

	// Sizes holds the non-zero per-size quantities in display order.
	Sizes []SizeQuantity `json:"sizes"`

	// SizesText is Sizes rendered as "M 5 | L 2".
	SizesText string `json:"sizes_text"`

	// Total is the sum of Sizes.
	Total decimal.Decimal `json:"total"`
}

// Input bundles everything a reconciliation run needs. Nothing else is read.
type Input struct {
	SourceRows       []InventoryRecord
	ComparisonRows   []SessionRecord
	StoreToWarehouse StoreMapping
}

// Stats counts what happened to the records of one source during aggregation.
type Stats struct {
	// Rows is the number of records received.
	Rows int `json:"rows"`

	// Accepted is the number of records folded into a bucket.
	Accepted int `json:"accepted"`

	// SkippedEmptyBarcode counts records without a barcode.
	SkippedEmptyBarcode int `json:"skipped_empty_barcode"`

	// SkippedZeroUnits counts session records with no units.
	SkippedZeroUnits int `json:"skipped_zero_units"`

	// SkippedUnmapped counts session records whose store has no warehouse.
	SkippedUnmapped int `json:"skipped_unmapped"`

	// UnmappedStores lists the distinct unmapped store identifiers, sorted.
	UnmappedStores []string `json:"unmapped_stores"`
}

// Summary provides aggregate statistics for a reconciliation run.
type Summary struct {
	Source     Stats `json:"source"`
	Comparison Stats `json:"comparison"`

	// KeysCompared is the size of the union of keys from both sources.
	KeysCompared int `json:"keys_compared"`

	// Discrepancies is the number of keys with a non-empty difference.
	Discrepancies int `json:"discrepancies"`

	SourceLines     int `json:"source_lines"`
	ComparisonLines int `json:"comparison_lines"`
	DifferenceLines int `json:"difference_lines"`
}

// Report is the outcome of a run: the ordered lines plus a summary.
type Report struct {
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
}

// NoDifferences reports whether both sources agree completely.
func (r *Report) NoDifferences() bool {
	return len(r.Lines) == 0
}
