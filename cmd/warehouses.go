package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"stock-reconciler/core/database"
	"stock-reconciler/feature/warehouses"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// warehousesCmd is the parent command for the store mapping.
var warehousesCmd = &cobra.Command{
	Use:   "warehouses",
	Short: "Manage the store to warehouse mapping",
	Long:  `Lists and edits the store to warehouse mapping kept in the database.`,
}

var warehousesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored and effective mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := warehousesService(false)
		if err != nil {
			return err
		}
		defer logg.Sync()

		effective, err := svc.Mapping(cmd.Context())
		if err != nil {
			return err
		}
		stored, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		source := make(map[string]string, len(stored))
		for _, row := range stored {
			source[row.Store] = "database"
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIENDA\tALMACÉN\tORIGEN")
		for _, store := range effective.Stores() {
			origin := source[store]
			if origin == "" {
				origin = "config"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", store, effective[store], origin)
		}
		return tw.Flush()
	},
}

var warehousesSetCmd = &cobra.Command{
	Use:   "set <store> <warehouse>",
	Short: "Map a store to a warehouse",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := warehousesService(true)
		if err != nil {
			return err
		}
		defer logg.Sync()
		return svc.Set(cmd.Context(), args[0], args[1])
	},
}

var warehousesRemoveCmd = &cobra.Command{
	Use:   "remove <store>",
	Short: "Remove the stored mapping of a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := warehousesService(true)
		if err != nil {
			return err
		}
		defer logg.Sync()

		found, err := svc.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !found {
			logg.Warn("Store was not mapped", zap.String("store", args[0]))
		}
		return nil
	},
}

func init() {
	warehousesCmd.AddCommand(warehousesListCmd, warehousesSetCmd, warehousesRemoveCmd)
	RootCmd.AddCommand(warehousesCmd)
}

// warehousesService builds the mapping service. Writes need the database,
// reads fall back to the configured mapping.
func warehousesService(requireDB bool) (*warehouses.Service, *zap.Logger, error) {
	cfg, logg, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}
	fallback, err := cfg.Reconcile.StoreMapping()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid RECONCILE_MAPPING: %w", err)
	}

	repo := warehouses.NewRepository(connectOptional(cfg.Database, logg))
	if repo.Available() {
		if err := repo.AutoMigrate(); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate mapping table: %w", err)
		}
	} else if requireDB {
		return nil, nil, fmt.Errorf("database connection required (%s)", describeDB(cfg.Database))
	}
	return warehouses.NewService(repo, fallback, 0, logg), logg, nil
}

func describeDB(cfg database.Config) string {
	if cfg.Driver == "sqlite" {
		return "sqlite " + cfg.Name
	}
	return fmt.Sprintf("%s %s:%d/%s", cfg.Driver, cfg.Host, cfg.Port, cfg.Name)
}
