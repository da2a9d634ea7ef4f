package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/display"
)

var (
	outdatedConfigFlag   string
	outdatedOutputFlag   string
	outdatedManagerFlag  []string
	outdatedParallelFlag bool
	outdatedStrictFlag   bool
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "List packages with a newer version available",
	Long: `Collect the inventory like 'bagpack inventory' and show only the packages
whose latest version differs from the installed one.`,
	RunE: runOutdated,
}

func init() {
	outdatedCmd.Flags().StringVarP(&outdatedConfigFlag, "config", "c", "", "Config file path")
	outdatedCmd.Flags().StringVarP(&outdatedOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
	outdatedCmd.Flags().StringSliceVarP(&outdatedManagerFlag, "manager", "m", nil, "Only collect these managers (comma-separated): brew,npm,pip")
	outdatedCmd.Flags().BoolVar(&outdatedParallelFlag, "parallel", false, "Run the managers concurrently")
	outdatedCmd.Flags().BoolVar(&outdatedStrictFlag, "strict", false, "Exit non-zero when a manager fails (1 partial, 2 all)")
}

// runOutdated executes the outdated command.
func runOutdated(cmd *cobra.Command, args []string) error {
	return runCollection(cmd, collectionRequest{
		configPath:   outdatedConfigFlag,
		output:       outdatedOutputFlag,
		managers:     outdatedManagerFlag,
		parallel:     outdatedParallelFlag,
		strict:       outdatedStrictFlag,
		onlyOutdated: true,
		schema:       display.OutdatedSchema,
		qualifier:    "outdated",
	})
}
