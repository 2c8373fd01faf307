package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var contextFiles int

var contextCmd = &cobra.Command{
	Use:   "context <task description>",
	Short: "Rank files relevant to a task description",
	Long: `Score every indexed file against the keywords of a free-form task
description. Symbol-name hits weigh most, signature hits less, path
hits least; files scoring zero are dropped.

Example:
  codemap context "add retry logic to the http client"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().IntVarP(&contextFiles, "files", "n", 0, "maximum files (default from config)")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")

	path, err := resolveTarget(nil)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	max := contextFiles
	if max <= 0 {
		max = GetConfig().Search.ContextFiles
	}

	scores := idx.ContextForTask(description, max)
	if len(scores) == 0 {
		fmt.Println("No files matched the task description")
		return nil
	}

	for _, fs := range scores {
		fmt.Println(formatFileScore(fs))
	}
	return nil
}
