package checks

import (
	"fmt"
	"reflect"
	"strings"

	"stock-reconciler/core/database"
	"stock-reconciler/feature/warehouses"

	"gorm.io/gorm"
)

// ServerReport strictly types the result of a database schema check.
type ServerReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// Models are the tables the reconciler owns.
var Models = []any{warehouses.StoreWarehouse{}}

// CheckServerIntegrity verifies the database schema using the GORM models as
// the source of truth.
func CheckServerIntegrity(db *gorm.DB, models ...any) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if len(models) == 0 {
		models = Models
	}

	report := &ServerReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range models {
		t := reflect.TypeOf(model)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := compareColumns(t, actualCols)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

// compareColumns checks every tagged field of t against the actual columns.
// A table that does not exist reports every column as missing.
func compareColumns(t reflect.Type, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualMap := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		actualMap[col.Field] = col
	}

	for i := 0; i < t.NumField(); i++ {
		gormTag := t.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Soft check: the declared type only has to appear in the actual one,
		// so datetime matches datetime(3).
		expType := strings.ToLower(parseGormType(gormTag))
		if expType != "" && !strings.Contains(actCol.Type, expType) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

func parseGormColumn(tag string) string {
	return gormTagValue(tag, "column:")
}

func parseGormType(tag string) string {
	return gormTagValue(tag, "type:")
}

func gormTagValue(tag, prefix string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix)
		}
	}
	return ""
}
