package tabular

import (
	"io"

	"stock-reconciler/core/reconcile"
)

// column describes one logical column and the header names that may carry it.
type column struct {
	name     string
	synonyms []string
	required bool
}

var (
	colBarcode     = column{"EAN", []string{"EAN", "Codigo Barras", "Codigo de barras", "Cod. Barras", "Barcode"}, true}
	colConcept     = column{"Concepto", []string{"Concepto", "Nombre"}, true}
	colDescription = column{"Descripcion", []string{"Descripcion", "Grupo"}, false}
	colSize        = column{"Talla", []string{"Talla", "Size"}, true}
	colWarehouse   = column{"Almacén", []string{"Almacen", "Almac�n"}, true}
	colStockNew    = column{"Stock Nuevo", []string{"Stock Nuevo", "Nuevo"}, true}
	colStockUsed   = column{"Stock Alquiler/Usado", []string{"Stock Alquiler", "Stock Usado", "Usado", "Alquiler"}, true}

	colStore = column{"Tienda", []string{"Tienda", "Store", "Almacen Tienda"}, true}
	colUsage = column{"Uso", []string{"Uso", "Estado", "Condicion"}, true}
	colUnits = column{"Unidades", []string{"Unidades", "Cantidad", "Units"}, true}
)

var (
	inventoryColumns = []column{colBarcode, colConcept, colDescription, colSize, colWarehouse, colStockNew, colStockUsed}
	sessionColumns   = []column{colStore, colUsage, colSize, colUnits, colBarcode}
)

// locate resolves every column against the header. It returns the index of each
// column (-1 when absent) or a MissingColumnsError naming the required ones that
// could not be found.
func (t *Table) locate(kind SourceKind, cols []column) (map[string]int, error) {
	idx := make(map[string]int, len(cols))
	var missing []string
	for _, c := range cols {
		i := t.Pick(c.synonyms...)
		if i < 0 && c.required {
			missing = append(missing, c.name)
		}
		idx[c.name] = i
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{SourceKind: kind, MissingColumns: missing}
	}
	return idx, nil
}

// DecodeInventory decodes an inventory export into records, in file order.
func DecodeInventory(r io.Reader) ([]reconcile.InventoryRecord, error) {
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	idx, err := t.locate(SourceInventory, inventoryColumns)
	if err != nil {
		return nil, err
	}

	records := make([]reconcile.InventoryRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, reconcile.InventoryRecord{
			Barcode:      Cell(row, idx[colBarcode.name]),
			Concept:      Cell(row, idx[colConcept.name]),
			Description:  Cell(row, idx[colDescription.name]),
			Size:         Cell(row, idx[colSize.name]),
			Warehouse:    Cell(row, idx[colWarehouse.name]),
			QuantityNew:  ParseQuantity(Cell(row, idx[colStockNew.name])),
			QuantityUsed: ParseQuantity(Cell(row, idx[colStockUsed.name])),
		})
	}
	return records, nil
}

// DecodeSessions decodes a store session export into records, in file order.
func DecodeSessions(r io.Reader) ([]reconcile.SessionRecord, error) {
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	idx, err := t.locate(SourceSessions, sessionColumns)
	if err != nil {
		return nil, err
	}

	records := make([]reconcile.SessionRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, reconcile.SessionRecord{
			Store:   Cell(row, idx[colStore.name]),
			Usage:   reconcile.ParseUsage(Cell(row, idx[colUsage.name])),
			Size:    Cell(row, idx[colSize.name]),
			Units:   ParseQuantity(Cell(row, idx[colUnits.name])),
			Barcode: Cell(row, idx[colBarcode.name]),
		})
	}
	return records, nil
}
