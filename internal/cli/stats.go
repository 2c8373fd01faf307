package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show index statistics",
	Long: `Build the index and print aggregate counters: file and symbol totals,
per-language breakdown, estimated memory footprint and cache counters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatsCmd,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	idx.PrintStats(os.Stdout)
	return nil
}
