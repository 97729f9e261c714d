// Package tabular decodes the semicolon-delimited exports consumed by the reconciler.
//
// Both exports share one dialect: fields separated by ';', optional '"' quoting with
// '""' as an escaped quote, one record per line (any line ending), blank lines
// ignored and a mandatory header row. Headers are matched case- and
// diacritic-insensitively against a small set of synonyms per logical column,
// so "Almacén", "ALMACEN" and "Almacen" all locate the warehouse column.
//
// # Errors
//
// Decoding fails with *MissingColumnsError when a required column is absent. Every
// other data-quality problem is absorbed: unparseable numbers become zero and the
// record is kept so that later stages can apply their own exclusion rules.
//
// # Usage
//
//	records, err := tabular.DecodeInventory(file)
//	var missing *tabular.MissingColumnsError
//	if errors.As(err, &missing) {
//	    // show missing.MissingColumns to the user
//	}
package tabular
