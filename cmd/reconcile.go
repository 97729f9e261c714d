package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/report"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/conciliation"
	"stock-reconciler/feature/warehouses"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inventoryPath string
	sessionPaths  []string
	mappingFlag   string
	storesFlag    []string
	fromStorage   bool
	xlsxPath      string
	jsonPath      string
	uploadReport  bool
	quietLines    bool
)

// reconcileCmd reconciles an inventory export against store session exports.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile inventory stock against store session exports",
	Long: `Compares the inventory export against one or more store session exports and
prints, for every article, warehouse and usage that disagree, the inventory
line, the counted line ("CSV") and the difference ("Dif").

The store to warehouse mapping comes from the database, then RECONCILE_MAPPING,
and --map overrides both.

Examples:
  # Local files
  reconcile --inventory inventario.csv --sessions tienda3.csv --sessions tienda4.csv --map 3=34,4=35

  # Only some stores, saving a spreadsheet
  reconcile --inventory inventario.csv --sessions sesiones.csv --stores 3 --xlsx conciliacion.xlsx

  # Exports already in the bucket, uploading the spreadsheet to the reports prefix
  reconcile --from-storage --upload`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&inventoryPath, "inventory", "", "Inventory export (Velneo)")
	reconcileCmd.Flags().StringArrayVar(&sessionPaths, "sessions", nil, "Store session export (Tiendas), repeatable")
	reconcileCmd.Flags().StringVar(&mappingFlag, "map", "", "Store mapping override, e.g. 3=34,Ayala=34")
	reconcileCmd.Flags().StringSliceVar(&storesFlag, "stores", nil, "Only reconcile these stores")
	reconcileCmd.Flags().BoolVar(&fromStorage, "from-storage", false, "Read the exports from the bucket")
	reconcileCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the result as a spreadsheet")
	reconcileCmd.Flags().StringVar(&jsonPath, "json", "", "Write the result as JSON")
	reconcileCmd.Flags().BoolVar(&uploadReport, "upload", false, "Upload the spreadsheet to the reports prefix")
	reconcileCmd.Flags().BoolVar(&quietLines, "quiet", false, "Only print the summary")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	fallback, err := cfg.Reconcile.StoreMapping()
	if err != nil {
		return fmt.Errorf("invalid RECONCILE_MAPPING: %w", err)
	}
	override, err := reconcile.ParseMapping(mappingFlag)
	if err != nil {
		return fmt.Errorf("invalid --map: %w", err)
	}

	db := connectOptional(cfg.Database, logg)
	mappings := warehouses.NewService(warehouses.NewRepository(db), fallback, cfg.Reconcile.MappingCacheTTL(), logg)

	var client storage.Client
	if fromStorage || uploadReport {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	svc := conciliation.NewService(client, cfg.Storage.Bucket, cfg.Reconcile, mappings, logg)

	var rep *reconcile.Report
	if fromStorage {
		result, err := svc.RunFromStorage(ctx, conciliation.StorageRequest{
			Mapping: override,
			Stores:  storesFlag,
			Upload:  uploadReport,
		})
		if err != nil {
			return err
		}
		logg.Info("Reconciled stored exports",
			zap.String("inventory", result.Inventory),
			zap.Strings("sessions", result.Sessions))
		if result.ReportKey != "" {
			logg.Info("Spreadsheet uploaded", zap.String("key", result.ReportKey))
		}
		rep = result.Report
	} else {
		req, err := fileRequest(override)
		if err != nil {
			return err
		}
		if rep, err = svc.Run(ctx, req); err != nil {
			return err
		}
		if uploadReport {
			key, err := svc.UploadReport(ctx, rep)
			if err != nil {
				return err
			}
			logg.Info("Spreadsheet uploaded", zap.String("key", key))
		}
	}

	if !quietLines {
		printLines(os.Stdout, rep.Lines)
	}
	printSummary(logg, rep)

	if xlsxPath != "" {
		if err := writeFile(xlsxPath, func(w io.Writer) error { return report.WriteXLSX(w, rep) }); err != nil {
			return err
		}
		logg.Info("Spreadsheet saved", zap.String("file", xlsxPath))
	}
	if jsonPath != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		logg.Info("JSON report saved", zap.String("file", jsonPath))
	}
	return nil
}

// fileRequest reads the local exports named by the flags.
func fileRequest(override reconcile.StoreMapping) (conciliation.Request, error) {
	if inventoryPath == "" || len(sessionPaths) == 0 {
		return conciliation.Request{}, fmt.Errorf("--inventory and at least one --sessions are required (or use --from-storage)")
	}

	inventory, err := readFile(inventoryPath)
	if err != nil {
		return conciliation.Request{}, err
	}
	req := conciliation.Request{Inventory: inventory, Mapping: override, Stores: storesFlag}
	for _, p := range sessionPaths {
		f, err := readFile(p)
		if err != nil {
			return conciliation.Request{}, err
		}
		req.Sessions = append(req.Sessions, f)
	}
	return req, nil
}

func readFile(path string) (conciliation.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return conciliation.File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return conciliation.File{Name: filepath.Base(path), Reader: bytes.NewReader(data)}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// printLines writes the lines as an aligned table.
func printLines(w io.Writer, lines []reconcile.Line) {
	if len(lines) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONCEPTO\tDESCRIPCIÓN\tEAN\tALMACÉN\tUSO\tTALLAS\tTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Concept, l.Description, l.Barcode, l.Warehouse, l.Usage, l.SizesText, l.Total.String())
	}
	_ = tw.Flush()
}

// printSummary logs the run counters. No differences is its own outcome.
func printSummary(l *zap.Logger, rep *reconcile.Report) {
	s := rep.Summary

	l.Info("Reconciliation report",
		zap.Int("inventory_rows", s.Source.Rows),
		zap.Int("inventory_skipped_empty_barcode", s.Source.SkippedEmptyBarcode),
		zap.Int("session_rows", s.Comparison.Rows),
		zap.Int("session_skipped_zero_units", s.Comparison.SkippedZeroUnits),
		zap.Int("session_skipped_empty_barcode", s.Comparison.SkippedEmptyBarcode),
		zap.Int("session_skipped_unmapped", s.Comparison.SkippedUnmapped),
		zap.Int("keys_compared", s.KeysCompared),
		zap.Int("discrepancies", s.Discrepancies),
	)
	if len(s.Comparison.UnmappedStores) > 0 {
		l.Warn("Stores without a warehouse were not reconciled", zap.Strings("stores", s.Comparison.UnmappedStores))
	}
	if rep.NoDifferences() {
		l.Info("No differences: inventory and store sessions agree")
	}
}
