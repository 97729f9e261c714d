package report

import (
	"fmt"
	"io"

	"stock-reconciler/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	// LinesSheet holds one row per result line.
	LinesSheet = "Conciliacion"
	// SummarySheet holds the run counters.
	SummarySheet = "Resumen"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LineHeaders are the column titles of the lines sheet.
var LineHeaders = []string{"Concepto", "Descripción", "EAN", "Almacén", "Uso", "Tallas", "Total"}

// Build creates a workbook for the report. The caller must close it.
func Build(r *reconcile.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", LinesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeLines(f, r.Lines); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummary(f, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX writes the report as an xlsx workbook to w.
func WriteXLSX(w io.Writer, r *reconcile.Report) error {
	f, err := Build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeLines(f *excelize.File, lines []reconcile.Line) error {
	header := make([]interface{}, len(LineHeaders))
	for i, h := range LineHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(LinesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(LinesSheet, "A1", "G1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			l.Concept,
			l.Description,
			l.Barcode,
			l.Warehouse,
			l.Usage.String(),
			l.SizesText,
			l.Total.InexactFloat64(),
		}
		if err := f.SetSheetRow(LinesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
		if l.Role == reconcile.RoleDifference {
			end, _ := excelize.CoordinatesToCellName(len(row), i+2)
			if err := f.SetCellStyle(LinesSheet, cell, end, bold); err != nil {
				return fmt.Errorf("failed to style line %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(LinesSheet, "A", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(LinesSheet, "F", "F", 40)
}

func writeSummary(f *excelize.File, r *reconcile.Report) error {
	s := r.Summary
	rows := [][]interface{}{
		{"Filas inventario", s.Source.Rows},
		{"Filas tiendas", s.Comparison.Rows},
		{"Sin EAN (inventario)", s.Source.SkippedEmptyBarcode},
		{"Sin EAN (tiendas)", s.Comparison.SkippedEmptyBarcode},
		{"Unidades a cero", s.Comparison.SkippedZeroUnits},
		{"Tiendas sin almacén", s.Comparison.SkippedUnmapped},
		{"Claves comparadas", s.KeysCompared},
		{"Discrepancias", s.Discrepancies},
	}
	if r.NoDifferences() {
		rows = append(rows, []interface{}{"Resultado", "Sin diferencias"})
	}
	for _, store := range s.Comparison.UnmappedStores {
		rows = append(rows, []interface{}{"Tienda no conciliada", store})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 24)
}
