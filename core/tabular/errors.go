package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a file has no header row.
var ErrEmptyInput = errors.New("file is empty: a header row is required")

// SourceKind names the export a file was decoded as.
type SourceKind string

const (
	// SourceInventory is the inventory export ("Velneo").
	SourceInventory SourceKind = "inventory"
	// SourceSessions is a store session export ("Tiendas").
	SourceSessions SourceKind = "sessions"
)

// MissingColumnsError reports required columns that could not be located in
// the header row. It is fatal for the file being loaded and its message is
// meant to be shown to the user verbatim.
type MissingColumnsError struct {
	SourceKind     SourceKind `json:"source_kind"`
	MissingColumns []string   `json:"missing_columns"`
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s file is missing required columns: %s", e.SourceKind, strings.Join(e.MissingColumns, ", "))
}
