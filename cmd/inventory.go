package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/display"
)

var (
	inventoryConfigFlag   string
	inventoryOutputFlag   string
	inventoryManagerFlag  []string
	inventoryParallelFlag bool
	inventoryStrictFlag   bool
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"list", "ls"},
	Short:   "List installed packages from every enabled manager",
	Long: `Collect the installed packages of Homebrew, global npm and pip and show
their current and latest versions.

A manager that is missing or fails is reported as a warning; the other
managers are still listed. Use --strict to turn failures into a non-zero
exit code.`,
	RunE: runInventory,
}

func init() {
	inventoryCmd.Flags().StringVarP(&inventoryConfigFlag, "config", "c", "", "Config file path")
	inventoryCmd.Flags().StringVarP(&inventoryOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
	inventoryCmd.Flags().StringSliceVarP(&inventoryManagerFlag, "manager", "m", nil, "Only collect these managers (comma-separated): brew,npm,pip")
	inventoryCmd.Flags().BoolVar(&inventoryParallelFlag, "parallel", false, "Run the managers concurrently")
	inventoryCmd.Flags().BoolVar(&inventoryStrictFlag, "strict", false, "Exit non-zero when a manager fails (1 partial, 2 all)")
}

// runInventory executes the inventory command.
func runInventory(cmd *cobra.Command, args []string) error {
	return runCollection(cmd, collectionRequest{
		configPath: inventoryConfigFlag,
		output:     inventoryOutputFlag,
		managers:   inventoryManagerFlag,
		parallel:   inventoryParallelFlag,
		strict:     inventoryStrictFlag,
		schema:     display.InventorySchema,
	})
}
