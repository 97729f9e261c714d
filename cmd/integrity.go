package cmd

import (
	"context"
	"fmt"

	"stock-reconciler/core/storage"
	"stock-reconciler/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks the bucket folder structure, the exports waiting to be reconciled and the mapping table schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// exportsCmd represents the integrity exports command
var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Check the exports in the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the mapping database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, exportsCmd, serverCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runExports, runServer bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	db := connectOptional(cfg.Database, logg)
	svc := integrity.NewService(store, cfg.Storage.Bucket, cfg.Reconcile, logg, db)

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runExports {
		logg.Info("Checking exports...")
		report, err := svc.CheckExports(ctx)
		if err != nil {
			return fmt.Errorf("exports check failed: %w", err)
		}
		if !report.InventoryFound {
			logg.Warn("Inventory export not found", zap.String("object", report.Inventory))
		}
		if len(report.Sessions) == 0 {
			logg.Warn("No session exports found", zap.String("prefix", cfg.Reconcile.SessionsPrefix))
		}
		for key, problem := range report.Invalid {
			logg.Warn("Invalid export", zap.String("object", key), zap.String("error", problem))
		}
		if report.Ready {
			logg.Info("Exports are ready for reconciliation.", zap.Int("sessions", len(report.Sessions)))
		}
	}

	if runServer {
		logg.Info("Checking mapping database schema...")
		report, err := svc.CheckServer()
		if err != nil {
			logg.Error("Server schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Server schema matches expected definition.", zap.String("driver", report.Driver))
		} else {
			logg.Warn("Server schema mismatches found", zap.String("driver", report.Driver))
			for table, tblReport := range report.Tables {
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}
	return nil
}
