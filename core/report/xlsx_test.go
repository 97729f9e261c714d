package report

import (
	"bytes"
	"testing"

	"stock-reconciler/core/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *reconcile.Report {
	return reconcile.ReconcileWithSummary(reconcile.Input{
		SourceRows: []reconcile.InventoryRecord{{
			Barcode: "111", Concept: "CAM01", Description: "Camisa", Size: "M", Warehouse: "34",
			QuantityNew: decimal.NewFromInt(5),
		}},
		ComparisonRows: []reconcile.SessionRecord{
			{Store: "3", Barcode: "111", Size: "M", Units: decimal.NewFromInt(3)},
			{Store: "9", Barcode: "111", Size: "M", Units: decimal.NewFromInt(1)},
		},
		StoreToWarehouse: reconcile.StoreMapping{"3": "34"},
	})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LinesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, LineHeaders, rows[0])
	assert.Equal(t, []string{"CAM01", "Camisa", "111", "Dif", "Nuevo", "M 2", "2"}, rows[1])
	assert.Equal(t, "CSV", rows[2][3])
	assert.Equal(t, "34", rows[3][3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tienda no conciliada", "9"}, summary[len(summary)-1])
}

func TestWriteXLSX_NoDifferences(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, reconcile.ReconcileWithSummary(reconcile.Input{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LinesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Contains(t, summary, []string{"Resultado", "Sin diferencias"})
}
