// Package report exports reconciliation results as spreadsheets.
//
// WriteXLSX renders the ordered lines on a "Conciliacion" sheet (one row per line,
// with the per-size breakdown as text) and the run summary on a "Resumen" sheet.
// The lines are written exactly in the order the engine produced them.
package report
