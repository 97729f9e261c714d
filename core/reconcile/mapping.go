package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"stock-reconciler/core/utils"
)

// Normalize trims surrounding whitespace from a key component.
func Normalize(v string) string {
	return strings.TrimSpace(v)
}

// ParseUsage maps a free-text condition to a Usage. "Usado" and "Alquiler"
// (any case) mean used stock; anything else is new.
func ParseUsage(v string) Usage {
	switch utils.Fold(v) {
	case "usado", "usada", "alquiler":
		return UsageUsed
	default:
		return UsageNew
	}
}

// StoreMapping resolves a store identifier to the warehouse it reconciles against.
// A store without an entry is not part of the run.
type StoreMapping map[string]string

// Resolve returns the warehouse for store. The second value is false when the
// store is unmapped or mapped to an empty warehouse.
func (m StoreMapping) Resolve(store string) (string, bool) {
	if m == nil {
		return "", false
	}
	warehouse := Normalize(m[Normalize(store)])
	if warehouse == "" {
		return "", false
	}
	return warehouse, true
}

// Subset returns a mapping restricted to the given stores. Stores without an
// entry in m are ignored.
func (m StoreMapping) Subset(stores []string) StoreMapping {
	out := make(StoreMapping, len(stores))
	for _, s := range stores {
		s = Normalize(s)
		if w, ok := m.Resolve(s); ok {
			out[s] = w
		}
	}
	return out
}

// Merge returns a new mapping with the entries of other layered over m.
func (m StoreMapping) Merge(other StoreMapping) StoreMapping {
	out := make(StoreMapping, len(m)+len(other))
	for k, v := range m {
		out[Normalize(k)] = Normalize(v)
	}
	for k, v := range other {
		out[Normalize(k)] = Normalize(v)
	}
	return out
}

// Stores returns the mapped store identifiers, sorted.
func (m StoreMapping) Stores() []string {
	stores := make([]string, 0, len(m))
	for s := range m {
		stores = append(stores, s)
	}
	sort.Strings(stores)
	return stores
}

// String renders the mapping in the form accepted by ParseMapping.
func (m StoreMapping) String() string {
	parts := make([]string, 0, len(m))
	for _, s := range m.Stores() {
		parts = append(parts, s+"="+m[s])
	}
	return strings.Join(parts, ",")
}

// ParseMapping parses "store=warehouse" pairs separated by commas or semicolons,
// e.g. "3=34,Ayala=34". Empty entries are ignored.
func ParseMapping(s string) (StoreMapping, error) {
	m := make(StoreMapping)
	entries := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '\n' })
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		store, warehouse, ok := strings.Cut(entry, "=")
		store, warehouse = Normalize(store), Normalize(warehouse)
		if !ok || store == "" || warehouse == "" {
			return nil, fmt.Errorf("invalid mapping entry %q: expected store=warehouse", entry)
		}
		m[store] = warehouse
	}
	return m, nil
}
