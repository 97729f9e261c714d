package reconcile

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stock-reconciler/core/utils"
)

// Bucket accumulates per-size quantities for one Key of one source.
// Sizes is sparse: a size whose running quantity reaches zero is removed.
type Bucket struct {
	Concept     string
	Description string
	Warehouse   string
	Usage       Usage
	Sizes       map[string]decimal.Decimal
}

func newBucket(concept, description, warehouse string, usage Usage) *Bucket {
	return &Bucket{
		Concept:     concept,
		Description: description,
		Warehouse:   warehouse,
		Usage:       usage,
		Sizes:       make(map[string]decimal.Decimal),
	}
}

// Add accumulates qty into size.
func (b *Bucket) Add(size string, qty decimal.Decimal) {
	if qty.IsZero() {
		return
	}
	v := b.Sizes[size].Add(qty)
	if v.IsZero() {
		delete(b.Sizes, size)
		return
	}
	b.Sizes[size] = v
}

// Sum returns the total of all stored quantities.
func (b *Bucket) Sum() decimal.Decimal {
	total := decimal.Zero
	if b == nil {
		return total
	}
	for _, v := range b.Sizes {
		total = total.Add(v)
	}
	return total
}

// IsEmpty reports whether the bucket holds no quantities.
func (b *Bucket) IsEmpty() bool {
	return b == nil || len(b.Sizes) == 0
}

// Breakdown returns the stored quantities ordered with CompareSizes.
func (b *Bucket) Breakdown(col *collate.Collator) []SizeQuantity {
	if b.IsEmpty() {
		return nil
	}
	sizes := make([]string, 0, len(b.Sizes))
	for s := range b.Sizes {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool {
		return CompareSizes(col, sizes[i], sizes[j]) < 0
	})

	out := make([]SizeQuantity, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, SizeQuantity{Size: s, Quantity: b.Sizes[s]})
	}
	return out
}

// SizesSeparator joins the entries of a rendered breakdown.
const SizesSeparator = " | "

// FormatSizes renders a breakdown as "M 5 | L 2". Zero entries are skipped.
func FormatSizes(sizes []SizeQuantity) string {
	parts := make([]string, 0, len(sizes))
	for _, sq := range sizes {
		if sq.Quantity.IsZero() {
			continue
		}
		if sq.Size == "" {
			parts = append(parts, sq.Quantity.String())
			continue
		}
		parts = append(parts, sq.Size+" "+sq.Quantity.String())
	}
	return strings.Join(parts, SizesSeparator)
}

// NewCollator returns a Spanish collator. Collators are not safe for concurrent
// use, so each run creates its own.
func NewCollator() *collate.Collator {
	return collate.New(language.Spanish)
}

// uniqueSize reports whether s is the one-size token (ÚNICO, ÚNICA, U).
func uniqueSize(s string) bool {
	switch utils.Fold(s) {
	case "unico", "unica", "u", "talla unica":
		return true
	}
	return false
}

// CompareSizes orders sizes: numeric sizes ascending, then alphabetic sizes in
// Spanish collation, then the one-size token last. Ties fall back to byte order
// so the result is total.
func CompareSizes(col *collate.Collator, a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if ua, ub := uniqueSize(a), uniqueSize(b); ua != ub {
		if ua {
			return 1
		}
		return -1
	}

	an, bn := utils.IsDigits(a), utils.IsDigits(b)
	switch {
	case an && bn:
		if c := compareDigits(a, b); c != 0 {
			return c
		}
	case an:
		return -1
	case bn:
		return 1
	default:
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// compareDigits compares two digit strings numerically without overflowing.
func compareDigits(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	return strings.Compare(ta, tb)
}
