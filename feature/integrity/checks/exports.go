package checks

import (
	"context"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/storage"
	"stock-reconciler/core/tabular"
)

// ExportsReport describes the exports currently in the bucket.
type ExportsReport struct {
	Inventory      string            `json:"inventory"`
	InventoryFound bool              `json:"inventory_found"`
	Sessions       []string          `json:"sessions"`
	Invalid        map[string]string `json:"invalid"`
	Ready          bool              `json:"ready"`
}

// CheckExports verifies that the inventory export and at least one session
// export exist and that every one of them carries the required columns.
// Ready is true when a reconciliation from storage would succeed.
func CheckExports(ctx context.Context, client storage.Client, bucket string, cfg reconcile.Config) (*ExportsReport, error) {
	report := &ExportsReport{
		Inventory: cfg.InventoryObject,
		Sessions:  []string{},
		Invalid:   make(map[string]string),
	}

	sessions, err := storage.ListKeys(ctx, client, bucket, cfg.SessionsPrefix, ".csv")
	if err != nil {
		return nil, err
	}
	if sessions != nil {
		report.Sessions = sessions
	}

	if obj, err := storage.ReadObject(ctx, client, bucket, cfg.InventoryObject); err == nil {
		report.InventoryFound = true
		if _, err := tabular.DecodeInventory(obj.Reader()); err != nil {
			report.Invalid[obj.Key] = err.Error()
		}
	}

	for _, key := range sessions {
		obj, err := storage.ReadObject(ctx, client, bucket, key)
		if err != nil {
			report.Invalid[key] = err.Error()
			continue
		}
		if _, err := tabular.DecodeSessions(obj.Reader()); err != nil {
			report.Invalid[key] = err.Error()
		}
	}

	report.Ready = report.InventoryFound && len(sessions) > 0 && len(report.Invalid) == 0
	return report, nil
}
